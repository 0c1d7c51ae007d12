package telemetry

// DefaultFixtures returns the reference datasets shown by the dashboard.
// The figures are display constants, not computed results.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Monthly: []MetricSample{
			{Period: "Jan", OverspeedingCount: 5, HarshBrakingCount: 3, ClaimsCount: 0, ReputationScore: 85, EcoScore: 78},
			{Period: "Feb", OverspeedingCount: 3, HarshBrakingCount: 2, ClaimsCount: 0, ReputationScore: 88, EcoScore: 82},
			{Period: "Mar", OverspeedingCount: 4, HarshBrakingCount: 4, ClaimsCount: 1, ReputationScore: 82, EcoScore: 75},
			{Period: "Apr", OverspeedingCount: 2, HarshBrakingCount: 1, ClaimsCount: 0, ReputationScore: 90, EcoScore: 88},
		},
		Skills: []SkillRating{
			{Category: "Speed Control", Score: 80},
			{Category: "Braking", Score: 85},
			{Category: "Cornering", Score: 70},
			{Category: "Acceleration", Score: 75},
			{Category: "Night Driving", Score: 90},
			{Category: "Weather Handling", Score: 85},
		},
		Advisories: []AdvisoryMessage{
			"Consider taking defensive driving courses to improve your cornering techniques.",
			"Your night driving skills are exceptional! Keep maintaining safe distances.",
			"Try to reduce harsh accelerations to improve fuel efficiency and reduce wear.",
			"Your consistent speed control on highways is improving your safety score.",
			"Weather adaptation is good, but consider increasing following distance in rain.",
		},
		User: UserPanel{
			Vehicle: []StatCard{
				{Label: "Battery Health", Value: "95%", Accent: "green", Icon: "battery"},
				{Label: "Daily Mileage", Value: "42 mi", Accent: "blue", Icon: "navigation"},
				{Label: "Drive Time", Value: "1.5 hrs", Accent: "purple", Icon: "clock"},
				{Label: "Next Service", Value: "15 days", Accent: "orange", Icon: "calendar"},
			},
			Achievements: []Achievement{
				{Title: "Safe Driver", Detail: "30 days without incidents", Accent: "yellow", Icon: "award"},
				{Title: "Eco Master", Detail: "Top 10% efficient driving", Accent: "green", Icon: "shield"},
				{Title: "Improvement Star", Detail: "20% better than last month", Accent: "blue", Icon: "trending-up"},
			},
		},
		Company: CompanyPanel{
			KPIs: []StatCard{
				{Label: "Total Users", Value: "2543", Accent: "blue", Icon: "users"},
				{Label: "Average Risk Score", Value: "6.8/10", Accent: "purple", Icon: "shield"},
				{Label: "Active Claims", Value: "17", Accent: "yellow", Icon: "file"},
				{Label: "Risk Trend", Value: "-12%", Accent: "green", Icon: "trending-up"},
			},
			HighRisk: []DriverSummary{
				{Name: "Driver 1", Detail: "8 incidents this month", Score: "8.5/10"},
				{Name: "Driver 2", Detail: "8 incidents this month", Score: "8.5/10"},
			},
			SafeDriver: []DriverSummary{
				{Name: "Driver 1", Detail: "45 days safe streak", Score: "2.1/10"},
				{Name: "Driver 2", Detail: "45 days safe streak", Score: "2.1/10"},
			},
			Incidents: []Incident{
				{ID: 1, Driver: "John Smith", Type: "Speeding", Date: "2025-02-15", Severity: "High"},
				{ID: 2, Driver: "Sarah Johnson", Type: "Sharp Breaking", Date: "2025-02-14", Severity: "Medium"},
			},
			Reviews: []Review{
				{Title: "Driver Review #1", DueIn: "1 days"},
				{Title: "Driver Review #2", DueIn: "2 days"},
				{Title: "Driver Review #3", DueIn: "3 days"},
			},
		},
	}
}
