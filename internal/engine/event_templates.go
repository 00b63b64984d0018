package engine

import "github.com/Dessuht/syndicate-grid-flow-sub001/internal/agents"

func anyOfficer(g *Game, keep func(*agents.Officer) bool) bool {
	for _, o := range g.Officers {
		if keep(o) {
			return true
		}
	}
	return false
}

func anyHostileRival(g *Game) bool {
	for _, r := range g.Rivals {
		if r.Hostile() {
			return true
		}
	}
	return false
}

func disloyalSoldiers(g *Game) int {
	n := 0
	for _, s := range g.Soldiers {
		if s.Loyalty < 30 {
			n++
		}
	}
	return n
}

// EventTemplates returns the event catalog. Order matters: it breaks weight
// ties during selection.
func EventTemplates() []Template {
	return []Template{
		{
			Type:       "police_raid",
			Title:      "Police Raid",
			Severity:   SeverityMajor,
			BaseWeight: 10,
			Conditions: func(g *Game) bool { return g.Resources.PoliceHeat >= 40 },
			Narratives: Narratives{
				Intro: []string{
					"Sirens cut through the rain over ${building}.",
					"A patrol van idles outside ${building} longer than it should.",
				},
				Details: []string{
					"Sergeant Lam wants ${cashAtRisk} to look the other way.",
					"Word from the station says ${officer} is on a list.",
				},
				Consequences: []string{
					"With heat at ${heat}, they will not leave empty-handed.",
					"Whatever happens tonight, the street will be watching.",
				},
			},
			Modifiers: []Modifier{
				{Name: "Corrupt Captain", Description: "The captain is cheap this week.", BribeCostMultiplier: 0.5},
				{Name: "Task Force", Description: "Hong Kong Island sent a task force.", BribeCostMultiplier: 2, RiskMultiplier: 1.5},
			},
			Choices: []Choice{
				{
					ID:           "bribe",
					Label:        "Pay them off",
					Requirements: Requirements{Cash: 1500},
					Outcomes: []Outcome{
						{Probability: 80, Description: "The envelope disappears into a coat pocket.", Effects: Effects{Cash: -1500, Heat: -15}},
						{Probability: 20, Description: "Someone saw the envelope change hands.", Effects: Effects{Cash: -1500, Heat: 10}, FollowUp: "internal_affairs", Adverse: true},
					},
				},
				{
					ID:    "lay_low",
					Label: "Shut the doors and wait",
					Outcomes: []Outcome{
						{Probability: 60, Description: "${building} goes dark for a few days.", Effects: Effects{Heat: -5, BuildingInactiveDays: 2}},
						{Probability: 40, Description: "They took ${officer} in for questioning.", Effects: Effects{Heat: -10, ArrestOfficer: true}, Adverse: true},
					},
				},
				{
					ID:           "stand_firm",
					Label:        "Block the door",
					Requirements: Requirements{Soldiers: 5},
					Outcomes: []Outcome{
						{Probability: 50, Description: "The police back off. The street noticed.", Effects: Effects{Reputation: 10, Heat: 20, SoldierLoyalty: 5}},
						{Probability: 50, Description: "Batons and arrests. ${officer} is in a cell.", Effects: Effects{SoldiersLost: 2, Heat: 25, ArrestOfficer: true}, Adverse: true},
					},
				},
			},
		},
		{
			Type:     "internal_affairs",
			Title:    "Internal Affairs",
			Severity: SeverityCritical,
			Narratives: Narratives{
				Intro:        []string{"ICAC investigators are asking about a bribe."},
				Details:      []string{"They have a photograph and a name: ${officer}."},
				Consequences: []string{"Someone has to answer for it."},
			},
			Choices: []Choice{
				{
					ID:           "pay_off",
					Label:        "Make the file disappear",
					Requirements: Requirements{Cash: 3000},
					Outcomes: []Outcome{
						{Probability: 1, Description: "The file is misplaced. Permanently.", Effects: Effects{Cash: -3000, Heat: -10}},
					},
				},
				{
					ID:    "sacrifice",
					Label: "Let ${officer} take the fall",
					Outcomes: []Outcome{
						{Probability: 1, Description: "${officer} goes quietly.", Effects: Effects{ArrestOfficer: true, Heat: -20, Reputation: -5, OfficerLoyalty: -30}},
					},
				},
			},
		},
		{
			Type:       "rival_provocation",
			Title:      "Provocation",
			Severity:   SeverityModerate,
			BaseWeight: 8,
			Conditions: anyHostileRival,
			Narratives: Narratives{
				Intro: []string{
					"${rival} boys tagged the walls around ${building}.",
					"A ${rival} crew smashed a stall in ${district}.",
				},
				Details: []string{
					"They are daring us to answer.",
					"Our soldiers are asking what the Dragonhead will do.",
				},
				Consequences: []string{"Face is on the line."},
			},
			Modifiers: []Modifier{
				{Name: "Witnesses", Description: "Half the market saw it.", ReputationMultiplier: 2},
				{Name: "Ambush", Description: "It smells like a trap.", RiskMultiplier: 2},
			},
			Choices: []Choice{
				{
					ID:    "retaliate",
					Label: "Hit back tonight",
					Outcomes: []Outcome{
						{Probability: 60, Description: "${rival} learned a lesson.", Effects: Effects{Reputation: 8, Heat: 5, RivalRelationship: -15, RivalStrength: -5, StartConflict: true}},
						{Probability: 40, Description: "It was a setup. ${officer} got cut.", Effects: Effects{Reputation: -3, SoldiersLost: 1, WoundOfficer: 2, RivalRelationship: -15, StartConflict: true}, Adverse: true},
					},
				},
				{
					ID:    "ignore",
					Label: "Let it go",
					Outcomes: []Outcome{
						{Probability: 1, Description: "The crew mutters about weakness.", Effects: Effects{Reputation: -5, SoldierLoyalty: -3}},
					},
				},
				{
					ID:           "parley",
					Label:        "Send a messenger",
					Requirements: Requirements{Influence: 10},
					Outcomes: []Outcome{
						{Probability: 1, Description: "${rival} accepts an apology over dim sum.", Effects: Effects{Influence: -10, RivalRelationship: 15}},
					},
				},
			},
		},
		{
			Type:       "wounded_officer",
			Title:      "Back-Alley Doctor",
			Severity:   SeverityModerate,
			BaseWeight: 6,
			Focus:      FocusWounded,
			Conditions: func(g *Game) bool {
				return anyOfficer(g, func(o *agents.Officer) bool { return o.IsWounded })
			},
			Narratives: Narratives{
				Intro:        []string{"${woundedOfficer} is bleeding through the bandages."},
				Details:      []string{"A doctor in Kowloon City will treat them, no questions asked, for a price."},
				Consequences: []string{"Left alone, the wound will take its time."},
			},
			Choices: []Choice{
				{
					ID:           "doctor",
					Label:        "Pay the doctor",
					Requirements: Requirements{Cash: 800},
					Outcomes: []Outcome{
						{Probability: 1, Description: "${woundedOfficer} is back on their feet.", Effects: Effects{Cash: -800, HealOfficer: true, OfficerLoyalty: 10}},
					},
				},
				{
					ID:    "rest",
					Label: "Let them rest",
					Outcomes: []Outcome{
						{Probability: 1, Description: "${woundedOfficer} feels forgotten.", Effects: Effects{OfficerLoyalty: -5}},
					},
				},
			},
		},
		{
			Type:       "officer_in_custody",
			Title:      "Officer in Custody",
			Severity:   SeverityModerate,
			BaseWeight: 5,
			Focus:      FocusArrested,
			Conditions: func(g *Game) bool {
				return anyOfficer(g, func(o *agents.Officer) bool { return o.IsArrested })
			},
			Narratives: Narratives{
				Intro:        []string{"${arrestedOfficer} has spent another night in a cell."},
				Details:      []string{"A barrister from Central offers their services."},
				Consequences: []string{"The longer they sit, the more they might say."},
			},
			Modifiers: []Modifier{
				{Name: "Friendly Judge", Description: "The magistrate owes a favour.", BribeCostMultiplier: 0.5},
			},
			Choices: []Choice{
				{
					ID:           "lawyer",
					Label:        "Hire the barrister",
					Requirements: Requirements{Cash: 1500},
					Outcomes: []Outcome{
						{Probability: 85, Description: "${arrestedOfficer} walks out on a technicality.", Effects: Effects{Cash: -1500, ReleaseOfficer: true, OfficerLoyalty: 10}},
						{Probability: 15, Description: "The barrister took the money and lost.", Effects: Effects{Cash: -1500, OfficerLoyalty: -5}, Adverse: true},
					},
				},
				{
					ID:    "wait",
					Label: "Let them sit",
					Outcomes: []Outcome{
						{Probability: 1, Description: "${arrestedOfficer} waits, and resents it.", Effects: Effects{OfficerLoyalty: -10}},
					},
				},
			},
		},
		{
			Type:       "protection_tribute",
			Title:      "Tribute",
			Severity:   SeverityMinor,
			BaseWeight: 12,
			Conditions: func(g *Game) bool { return len(g.OccupiedBuildings()) > 0 },
			Narratives: Narratives{
				Intro: []string{
					"Shopkeepers near ${building} bring red envelopes.",
					"The stallholders of ${building}'s street ask for protection.",
				},
				Details:      []string{"They offer a monthly payment for quiet streets."},
				Consequences: []string{"How we answer will travel."},
			},
			Modifiers: []Modifier{
				{Name: "Festival Season", Description: "Business is good this month.", RewardMultiplier: 1.5},
			},
			Choices: []Choice{
				{
					ID:    "accept",
					Label: "Accept the tribute",
					Outcomes: []Outcome{
						{Probability: 1, Description: "The envelopes are thick.", Effects: Effects{Cash: 600, Heat: 3}},
					},
				},
				{
					ID:    "decline",
					Label: "Protect them for free",
					Outcomes: []Outcome{
						{Probability: 1, Description: "The neighbourhood remembers kindness.", Effects: Effects{Reputation: 5}},
					},
				},
				{
					ID:    "squeeze",
					Label: "Demand more",
					Outcomes: []Outcome{
						{Probability: 60, Description: "They pay, and they hate us for it.", Effects: Effects{Cash: 1200, Reputation: -3, Heat: 5}},
						{Probability: 40, Description: "They closed up and went to the police.", Effects: Effects{Reputation: -8, Heat: 8, BuildingInactiveDays: 3}, Adverse: true},
					},
				},
			},
		},
		{
			Type:       "informant_offer",
			Title:      "Informant",
			Severity:   SeverityMinor,
			BaseWeight: 8,
			Conditions: func(g *Game) bool { return g.Resources.Intel < 80 },
			Narratives: Narratives{
				Intro:        []string{"A clerk from the Mong Kok station wants a meeting."},
				Details:      []string{"The clerk sells names, patrol routes and rival movements."},
				Consequences: []string{"Information is never free."},
			},
			Modifiers: []Modifier{
				{Name: "Double Agent", Description: "The clerk might be selling to both sides.", RiskMultiplier: 2},
			},
			Choices: []Choice{
				{
					ID:           "pay",
					Label:        "Buy what he has",
					Requirements: Requirements{Cash: 500},
					Outcomes: []Outcome{
						{Probability: 75, Description: "The notebook is worth every dollar.", Effects: Effects{Cash: -500, Intel: 15}},
						{Probability: 25, Description: "The clerk was wired.", Effects: Effects{Cash: -500, Heat: 10}, Adverse: true},
					},
				},
				{
					ID:    "decline",
					Label: "Send him away",
					Outcomes: []Outcome{
						{Probability: 1, Description: "The clerk shrugs and leaves.", Effects: Effects{}},
					},
				},
			},
		},
		{
			Type:       "traitor_exposed",
			Title:      "Traitor",
			Severity:   SeverityMajor,
			BaseWeight: 7,
			Focus:      FocusTraitor,
			Conditions: func(g *Game) bool {
				return anyOfficer(g, func(o *agents.Officer) bool { return o.IsTraitor })
			},
			Narratives: Narratives{
				Intro:        []string{"A soldier brings a photograph: ${traitor} drinking with the police."},
				Details:      []string{"The ledgers do not add up either."},
				Consequences: []string{"The crew is waiting to see what happens."},
			},
			Choices: []Choice{
				{
					ID:    "execute",
					Label: "Make an example",
					Outcomes: []Outcome{
						{Probability: 1, Description: "${traitor} is never seen again.", Effects: Effects{RemoveTraitor: true, Reputation: 10, Heat: 10, SoldierLoyalty: 5}},
					},
				},
				{
					ID:    "exile",
					Label: "Cast them out",
					Outcomes: []Outcome{
						{Probability: 1, Description: "${traitor} takes a boat to Macau.", Effects: Effects{RemoveTraitor: true, Reputation: 3}},
					},
				},
				{
					ID:    "forgive",
					Label: "Forgive them",
					Outcomes: []Outcome{
						{Probability: 70, Description: "${traitor} weeps and swears a new oath.", Effects: Effects{ClearTraitor: true, OfficerLoyalty: 30, Reputation: -5}},
						{Probability: 30, Description: "${traitor} smiles. Nothing has changed.", Effects: Effects{Reputation: -8, Heat: 5}, Adverse: true},
					},
				},
			},
		},
		{
			Type:       "street_rebellion",
			Title:      "Rebellion",
			Severity:   SeverityCritical,
			BaseWeight: 5,
			Conditions: func(g *Game) bool {
				return disloyalSoldiers(g) >= 2 && len(g.OccupiedBuildings()) > 0
			},
			Narratives: Narratives{
				Intro:        []string{"Unpaid and angry, soldiers have barricaded ${building}."},
				Details:      []string{"They say the family has forgotten them."},
				Consequences: []string{"If this spreads, the whole crew goes with it."},
			},
			Choices: []Choice{
				{
					ID:           "crush",
					Label:        "Crush it",
					Requirements: Requirements{Soldiers: 3},
					Outcomes: []Outcome{
						{Probability: 70, Description: "Order is restored by force.", Effects: Effects{SoldiersLost: 1, Heat: 15, SoldierLoyalty: -5, Reputation: 5}},
						{Probability: 30, Description: "The rebels hold ${building}.", Effects: Effects{SoldiersLost: 2, Heat: 15, RebelBase: true}, Adverse: true},
					},
				},
				{
					ID:           "negotiate",
					Label:        "Pay what they are owed",
					Requirements: Requirements{Cash: 2000},
					Outcomes: []Outcome{
						{Probability: 1, Description: "Back pay calms the crew.", Effects: Effects{Cash: -2000, SoldierLoyalty: 15}},
					},
				},
				{
					ID:    "abandon",
					Label: "Let them have it",
					Outcomes: []Outcome{
						{Probability: 1, Description: "${building} is a rebel base now.", Effects: Effects{RebelBase: true, Reputation: -10}},
					},
				},
			},
		},
		{
			Type:       "ghost_festival",
			Title:      "Hungry Ghost Festival",
			Severity:   SeverityMinor,
			BaseWeight: 4,
			Conditions: func(g *Game) bool { return g.Day >= 7 },
			Narratives: Narratives{
				Intro:        []string{"Paper offerings burn on every corner."},
				Details:      []string{"The temple committee asks the family to sponsor the opera stage."},
				Consequences: []string{"Generosity is remembered in Kowloon."},
			},
			Choices: []Choice{
				{
					ID:           "sponsor",
					Label:        "Sponsor the festival",
					Requirements: Requirements{Cash: 1500},
					Outcomes: []Outcome{
						{Probability: 1, Description: "The whole district eats on the family.", Effects: Effects{Cash: -1500, Reputation: 12, Influence: 5, SoldierLoyalty: 5}},
					},
				},
				{
					ID:    "skip",
					Label: "Stay out of it",
					Outcomes: []Outcome{
						{Probability: 1, Description: "The elders notice the empty seat.", Effects: Effects{Reputation: -2}},
					},
				},
			},
		},
		{
			Type:       "recruitment_drive",
			Title:      "Young Blood",
			Severity:   SeverityMinor,
			BaseWeight: 6,
			Conditions: func(g *Game) bool { return g.Resources.Reputation >= 40 },
			Narratives: Narratives{
				Intro:        []string{"Teenagers from the estates hang around ${building}."},
				Details:      []string{"They want in. The family's name carries weight."},
				Consequences: []string{"Fresh hands cost money to feed."},
			},
			Choices: []Choice{
				{
					ID:           "welcome",
					Label:        "Take two of them in",
					Requirements: Requirements{Cash: 600},
					Outcomes: []Outcome{
						{Probability: 1, Description: "Two new faces at the morning meeting.", Effects: Effects{Cash: -600, RecruitSoldiers: 2}},
					},
				},
				{
					ID:    "turn_away",
					Label: "Send them home",
					Outcomes: []Outcome{
						{Probability: 1, Description: "They drift off toward ${rival}.", Effects: Effects{RivalStrength: 2}},
					},
				},
			},
		},
	}
}
