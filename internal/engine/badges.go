package engine

// Stats is the counter snapshot badge predicates evaluate against. Every
// field is recomputed fresh from history; nothing here is cached state.
type Stats struct {
	TotalCalibrations   int
	CycleStreakDays     int
	CompletedModules    int
	AcceptedConnections int
	ReceivedInsights    int
	HighRatedInsights   int
	AxesAboveThreshold  int
	BestAxisStreakDays  int
	DestinyScore        int
	ScoreCalibrated     bool
}

// Badge is one entry of the fixed catalog. Unlocks must be monotone over
// Stats: once a predicate holds for a user's history it keeps holding, so
// an unlock can never need reversal.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Icon        string `json:"icon"`
	Unlocks     func(Stats) bool `json:"-"`
}

// Catalog is the closed badge catalog. It is configuration, not user data;
// evaluation walks it in order and checks every entry independently.
var Catalog = []Badge{
	{ID: "first_calibration", Name: "First Step", Description: "Complete your first emotional calibration", Category: "calibration", Rarity: "common", Icon: "🎯",
		Unlocks: func(s Stats) bool { return s.TotalCalibrations >= 1 }},
	{ID: "calibration_10", Name: "Getting Started", Description: "Complete 10 calibrations", Category: "calibration", Rarity: "common", Icon: "🎯",
		Unlocks: func(s Stats) bool { return s.TotalCalibrations >= 10 }},
	{ID: "calibration_50", Name: "Consistent Practice", Description: "Complete 50 calibrations", Category: "calibration", Rarity: "uncommon", Icon: "🎯",
		Unlocks: func(s Stats) bool { return s.TotalCalibrations >= 50 }},
	{ID: "calibration_100", Name: "Emotional Mastery", Description: "Complete 100 calibrations", Category: "calibration", Rarity: "rare", Icon: "🎯",
		Unlocks: func(s Stats) bool { return s.TotalCalibrations >= 100 }},

	{ID: "streak_3", Name: "Building Momentum", Description: "Maintain a 3-day streak", Category: "streak", Rarity: "common", Icon: "🔥",
		Unlocks: func(s Stats) bool { return s.CycleStreakDays >= 3 }},
	{ID: "streak_7", Name: "One Week Strong", Description: "Maintain a 7-day streak", Category: "streak", Rarity: "uncommon", Icon: "🔥",
		Unlocks: func(s Stats) bool { return s.CycleStreakDays >= 7 }},
	{ID: "streak_30", Name: "Monthly Dedication", Description: "Maintain a 30-day streak", Category: "streak", Rarity: "rare", Icon: "🔥",
		Unlocks: func(s Stats) bool { return s.CycleStreakDays >= 30 }},
	{ID: "streak_100", Name: "Unstoppable", Description: "Maintain a 100-day streak", Category: "streak", Rarity: "legendary", Icon: "🔥",
		Unlocks: func(s Stats) bool { return s.CycleStreakDays >= 100 }},

	{ID: "first_module", Name: "Knowledge Seeker", Description: "Complete your first module", Category: "learning", Rarity: "common", Icon: "📚",
		Unlocks: func(s Stats) bool { return s.CompletedModules >= 1 }},
	{ID: "modules_5", Name: "Dedicated Learner", Description: "Complete 5 modules", Category: "learning", Rarity: "uncommon", Icon: "📚",
		Unlocks: func(s Stats) bool { return s.CompletedModules >= 5 }},
	{ID: "modules_all", Name: "Master of Destiny", Description: "Complete all 14 modules", Category: "learning", Rarity: "legendary", Icon: "📚",
		Unlocks: func(s Stats) bool { return s.CompletedModules >= 14 }},

	{ID: "first_connection", Name: "Not Alone", Description: "Connect with your first accountability partner", Category: "social", Rarity: "common", Icon: "🤝",
		Unlocks: func(s Stats) bool { return s.AcceptedConnections >= 1 }},
	{ID: "inner_circle_5", Name: "Community Builder", Description: "Build an Inner Circle of 5 members", Category: "social", Rarity: "uncommon", Icon: "🤝",
		Unlocks: func(s Stats) bool { return s.AcceptedConnections >= 5 }},

	{ID: "first_insight", Name: "Pattern Recognition", Description: "Receive your first insight", Category: "insight", Rarity: "common", Icon: "💡",
		Unlocks: func(s Stats) bool { return s.ReceivedInsights >= 1 }},
	{ID: "insights_10", Name: "Self-Aware", Description: "Collect 10 insights", Category: "insight", Rarity: "uncommon", Icon: "💡",
		Unlocks: func(s Stats) bool { return s.ReceivedInsights >= 10 }},
	{ID: "insight_rated_high", Name: "Breakthrough", Description: "Rate an insight as highly valuable", Category: "insight", Rarity: "rare", Icon: "💡",
		Unlocks: func(s Stats) bool { return s.HighRatedInsights >= 1 }},

	{ID: "axis_streak_7", Name: "Holding Steady", Description: "Keep any axis at 70+ for 7 straight days", Category: "mastery", Rarity: "uncommon", Icon: "⚖️",
		Unlocks: func(s Stats) bool { return s.BestAxisStreakDays >= 7 }},
	{ID: "axis_streak_30", Name: "Deep Groove", Description: "Keep any axis at 70+ for 30 straight days", Category: "mastery", Rarity: "rare", Icon: "⚖️",
		Unlocks: func(s Stats) bool { return s.BestAxisStreakDays >= 30 }},
	{ID: "axis_streak_90", Name: "Second Nature", Description: "Keep any axis at 70+ for 90 straight days", Category: "mastery", Rarity: "legendary", Icon: "⚖️",
		Unlocks: func(s Stats) bool { return s.BestAxisStreakDays >= 90 }},

	{ID: "balance_3", Name: "Harmonized", Description: "Hold 3 axes at 70 or above at once", Category: "mastery", Rarity: "uncommon", Icon: "☯️",
		Unlocks: func(s Stats) bool { return s.AxesAboveThreshold >= 3 }},
	{ID: "destiny_70", Name: "Upward Spiral", Description: "Reach a Destiny Score of 70", Category: "mastery", Rarity: "rare", Icon: "🧭",
		Unlocks: func(s Stats) bool { return s.ScoreCalibrated && s.DestinyScore >= 70 }},
	{ID: "destiny_86", Name: "Self Mastery", Description: "Reach a Destiny Score in the mastery band", Category: "mastery", Rarity: "legendary", Icon: "🧭",
		Unlocks: func(s Stats) bool { return s.ScoreCalibrated && s.DestinyScore >= 86 }},
}

// BadgeByID looks up a catalog entry.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range Catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// EligibleBadges returns the ids of every catalog badge whose predicate
// holds for the given stats, in catalog order. It never short-circuits:
// a later axis or category can satisfy a threshold an earlier one missed.
func EligibleBadges(s Stats) []string {
	out := make([]string, 0, len(Catalog))
	for _, b := range Catalog {
		if b.Unlocks != nil && b.Unlocks(s) {
			out = append(out, b.ID)
		}
	}
	return out
}
