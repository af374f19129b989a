// Package catalog holds the static reference data the application ships
// with: the default lessons, quizzes and challenges seeded on first run, the
// badge catalog, and the demo accounts.
package catalog

import "github.com/Elizabethomito/ecolearn/internal/models"

// Lessons returns the default lesson set.
func Lessons() []models.Lesson {
	return []models.Lesson{
		{
			ID:          "lesson-1",
			Title:       "Understanding Climate Change",
			Topic:       "Climate Change",
			Description: "Learn about the causes and effects of climate change and what we can do to combat it.",
			Content: `# Understanding Climate Change

Climate change is the long-term shift in temperatures and weather patterns.
Since the 1800s human activity, mainly burning coal, oil and gas, has been
the main driver.

## Causes
- Burning fossil fuels releases carbon dioxide (CO2)
- Deforestation removes the trees that absorb CO2
- Agriculture releases methane and nitrous oxide

## Effects
- Rising sea levels and melting glaciers
- More frequent heatwaves, floods and droughts
- Loss of habitats and species

## What you can do
Save energy, travel by foot, bicycle or public transport, plant trees and
talk to your family about the choices they make.`,
			ImageURL:   "https://images.unsplash.com/photo-1611273426858-450d8e3c9fce",
			Duration:   15,
			Difficulty: models.LessonBeginner,
			EcoPoints:  50,
		},
		{
			ID:          "lesson-2",
			Title:       "Waste Management & Recycling",
			Topic:       "Waste Management",
			Description: "Discover the importance of proper waste management and how recycling helps our planet.",
			Content: `# Waste Management & Recycling

Every day our cities produce enormous amounts of solid waste. Most of it
ends up in landfills where it pollutes soil, water and air.

## Segregate at source
- Green bin: wet and organic waste
- Blue bin: dry waste such as paper, plastic and metal
- Hazardous waste (batteries, bulbs) goes to collection points

## The 5 R's
Refuse, Reduce, Reuse, Repurpose, Recycle. The first R prevents waste from
being created at all.

## Composting
Kitchen scraps and garden waste turn into rich compost in two to three
months.`,
			ImageURL:   "https://images.unsplash.com/photo-1532996122724-e3c354a0b15b",
			Duration:   12,
			Difficulty: models.LessonBeginner,
			EcoPoints:  50,
		},
		{
			ID:          "lesson-3",
			Title:       "Water Conservation Techniques",
			Topic:       "Water Conservation",
			Description: "Learn practical ways to conserve water and protect this precious resource.",
			Content: `# Water Conservation Techniques

Fresh water is scarce. A small share of the world's fresh water has to
serve a large share of its people.

## At home
- Fix leaking taps: a dripping tap wastes around 15 litres a day
- Turn off the tap while brushing your teeth
- Water plants early in the morning to reduce evaporation

## In the community
Rainwater harvesting collects and stores rain for later use and recharges
groundwater. Traditional structures such as stepwells did this for
centuries.`,
			ImageURL:   "https://images.unsplash.com/photo-1548839140-29a749e1cf4d",
			Duration:   10,
			Difficulty: models.LessonBeginner,
			EcoPoints:  50,
		},
		{
			ID:          "lesson-4",
			Title:       "Biodiversity & Wildlife Protection",
			Topic:       "Biodiversity",
			Description: "Explore the importance of biodiversity and how to protect endangered species.",
			Content: `# Biodiversity & Wildlife Protection

Biodiversity is the variety of life on Earth: genes, species and
ecosystems. Healthy ecosystems give us clean air, water, food and medicine.

## Threats
- Habitat loss from farming and construction
- Pollution and invasive species
- Poaching and illegal wildlife trade
- Climate change

## Protecting it
National parks and sanctuaries protect habitats. You can help by planting
native species, reducing pesticide use and documenting the wildlife near
you.`,
			ImageURL:   "https://images.unsplash.com/photo-1474511320723-9a56873867b5",
			Duration:   18,
			Difficulty: models.LessonIntermediate,
			EcoPoints:  75,
		},
		{
			ID:          "lesson-5",
			Title:       "Renewable Energy Solutions",
			Topic:       "Renewable Energy",
			Description: "Understand different types of renewable energy and their benefits for our planet.",
			Content: `# Renewable Energy Solutions

Renewable energy comes from sources that are naturally replenished.

## Types
- Solar: panels convert sunlight into electricity
- Wind: turbines turn moving air into power
- Hydro: flowing water drives turbines
- Biomass: organic material is burned or fermented for energy

## Why it matters
Renewables produce little or no greenhouse gas while running, reduce air
pollution and create local jobs. Saving energy at home is the cheapest
energy source of all.`,
			ImageURL:   "https://images.unsplash.com/photo-1509391366360-2e959784a276",
			Duration:   20,
			Difficulty: models.LessonIntermediate,
			EcoPoints:  75,
		},
	}
}

// Quizzes returns the default quiz set, one per early lesson.
func Quizzes() []models.Quiz {
	return []models.Quiz{
		{
			ID:           "quiz-1",
			LessonID:     "lesson-1",
			Title:        "Climate Change Quiz",
			Description:  "Test your knowledge about climate change and its impacts.",
			PassingScore: 70,
			EcoPoints:    30,
			Questions: []models.Question{
				{ID: "q1-1", Question: "What is the main greenhouse gas responsible for climate change?",
					Options: []string{"Oxygen", "Carbon Dioxide", "Nitrogen", "Hydrogen"}, CorrectAnswer: 1,
					Explanation: "Carbon dioxide is the primary greenhouse gas emitted by human activity, mostly from burning fossil fuels."},
				{ID: "q1-2", Question: "By what year has India committed to achieving net-zero emissions?",
					Options: []string{"2030", "2050", "2070", "2100"}, CorrectAnswer: 2,
					Explanation: "India pledged net-zero emissions by 2070 at COP26."},
				{ID: "q1-3", Question: "Which of these is NOT an effect of climate change?",
					Options: []string{"Rising sea levels", "Increased rainfall everywhere", "Extreme weather events", "Melting glaciers"}, CorrectAnswer: 1,
					Explanation: "Some regions get more rain and others face drought. Rainfall does not rise everywhere."},
				{ID: "q1-4", Question: "What share of its energy does India aim to meet from renewable sources by 2030?",
					Options: []string{"25%", "35%", "50%", "75%"}, CorrectAnswer: 2,
					Explanation: "The 2030 target is half of all energy requirements from renewables."},
				{ID: "q1-5", Question: "Which activity contributes most to deforestation?",
					Options: []string{"Natural forest fires", "Agricultural expansion", "Wildlife movement", "Rainfall"}, CorrectAnswer: 1,
					Explanation: "Forests are cleared to create farmland more than for any other reason."},
			},
		},
		{
			ID:           "quiz-2",
			LessonID:     "lesson-2",
			Title:        "Waste Management Quiz",
			Description:  "Check your understanding of waste management and recycling principles.",
			PassingScore: 70,
			EcoPoints:    30,
			Questions: []models.Question{
				{ID: "q2-1", Question: "How much municipal solid waste does India generate daily?",
					Options: []string{"50,000 tonnes", "100,000 tonnes", "150,000 tonnes", "200,000 tonnes"}, CorrectAnswer: 2,
					Explanation: "India generates over 150,000 tonnes of municipal solid waste every day."},
				{ID: "q2-2", Question: "What color bin is used for wet or organic waste?",
					Options: []string{"Blue", "Green", "Red", "Yellow"}, CorrectAnswer: 1,
					Explanation: "Green bins take wet waste that can be composted."},
				{ID: "q2-3", Question: "Which of the following is biodegradable waste?",
					Options: []string{"Plastic bottles", "Food scraps", "Glass jars", "Metal cans"}, CorrectAnswer: 1,
					Explanation: "Food scraps are organic matter and decompose naturally."},
				{ID: "q2-4", Question: "What is the first R in the 5 R's of waste management?",
					Options: []string{"Recycle", "Reduce", "Refuse", "Reuse"}, CorrectAnswer: 2,
					Explanation: "Refusing unnecessary items prevents waste from being created in the first place."},
				{ID: "q2-5", Question: "How long does it typically take to produce usable compost at home?",
					Options: []string{"1 week", "2-3 weeks", "2-3 months", "1 year"}, CorrectAnswer: 2,
					Explanation: "Home composting usually takes two to three months."},
			},
		},
		{
			ID:           "quiz-3",
			LessonID:     "lesson-3",
			Title:        "Water Conservation Quiz",
			Description:  "Test your knowledge about water conservation techniques.",
			PassingScore: 70,
			EcoPoints:    30,
			Questions: []models.Question{
				{ID: "q3-1", Question: "What percentage of the world's freshwater resources does India have?",
					Options: []string{"2%", "4%", "8%", "12%"}, CorrectAnswer: 1,
					Explanation: "India has about 4% of the world's fresh water and about 18% of its population."},
				{ID: "q3-2", Question: "How much water does a dripping tap waste per day?",
					Options: []string{"5 liters", "10 liters", "15 liters", "20 liters"}, CorrectAnswer: 2,
					Explanation: "A dripping tap wastes roughly 15 litres a day."},
				{ID: "q3-3", Question: "What is the best time to water plants to reduce evaporation?",
					Options: []string{"Noon", "Afternoon", "Evening", "Early morning"}, CorrectAnswer: 3,
					Explanation: "Early morning is cool, so less water evaporates."},
				{ID: "q3-4", Question: "Which traditional water conservation structure is found in Rajasthan?",
					Options: []string{"Ahar-Pyne", "Zabo", "Stepwells (Baolis)", "Eri"}, CorrectAnswer: 2,
					Explanation: "Stepwells are found across Rajasthan and Gujarat."},
				{ID: "q3-5", Question: "What is the main purpose of rainwater harvesting?",
					Options: []string{"Decoration", "Collect and store rainwater", "Increase rainfall", "Water purification only"}, CorrectAnswer: 1,
					Explanation: "It stores rain for later use and reduces dependence on groundwater."},
			},
		},
	}
}

// Challenges returns the default real-world challenges. All of them need a
// proof upload before a reviewer can approve them.
func Challenges() []models.Challenge {
	return []models.Challenge{
		{
			ID: "challenge-1", Title: "Plant a Tree Challenge",
			Description: "Plant a tree in your school, home, or community and watch it grow!",
			Category:    "Environment", Difficulty: models.ChallengeEasy, EcoPoints: 100, Duration: 30,
			Instructions: []string{
				"Choose a suitable location with adequate sunlight",
				"Select a native tree species appropriate for your region",
				"Dig a hole twice the width of the root ball",
				"Plant the tree and water it thoroughly",
				"Take a photo of yourself with the planted tree",
				"Submit your photo for verification",
			},
			VerificationRequired: true,
		},
		{
			ID: "challenge-2", Title: "Plastic-Free Week",
			Description: "Go plastic-free for one week and document your journey.",
			Category:    "Waste Reduction", Difficulty: models.ChallengeMedium, EcoPoints: 150, Duration: 7,
			Instructions: []string{
				"Avoid all single-use plastics for 7 days",
				"Use reusable bags, bottles, and containers",
				"Choose products with minimal packaging",
				"Keep a daily log and photograph your alternatives",
				"Submit your experience report",
			},
			VerificationRequired: true,
		},
		{
			ID: "challenge-3", Title: "Water Conservation Audit",
			Description: "Conduct a water audit at home and implement water-saving measures.",
			Category:    "Water Conservation", Difficulty: models.ChallengeMedium, EcoPoints: 120, Duration: 14,
			Instructions: []string{
				"Check all taps and pipes for leaks",
				"Measure water usage for different activities",
				"Fix any leaks and adopt water-saving habits",
				"Track water consumption before and after",
				"Submit your audit report with photos",
			},
			VerificationRequired: true,
		},
		{
			ID: "challenge-4", Title: "Community Clean-Up Drive",
			Description: "Organize or participate in a community clean-up event.",
			Category:    "Community Action", Difficulty: models.ChallengeMedium, EcoPoints: 200, Duration: 1,
			Instructions: []string{
				"Identify a location that needs cleaning",
				"Gather at least 5 volunteers",
				"Arrange gloves, bags and tools",
				"Segregate the collected waste properly",
				"Submit before and after photos with the participant list",
			},
			VerificationRequired: true,
		},
		{
			ID: "challenge-5", Title: "Start Composting at Home",
			Description: "Set up a composting system and turn kitchen waste into nutrient-rich compost.",
			Category:    "Waste Management", Difficulty: models.ChallengeEasy, EcoPoints: 100, Duration: 90,
			Instructions: []string{
				"Set up a composting bin or pit",
				"Collect vegetable peels and fruit scraps",
				"Add dry leaves or paper and turn regularly",
				"Submit photos showing the setup and progress",
			},
			VerificationRequired: true,
		},
		{
			ID: "challenge-6", Title: "Energy Saving Challenge",
			Description: "Reduce your household energy consumption by 20% in one month.",
			Category:    "Energy Conservation", Difficulty: models.ChallengeHard, EcoPoints: 250, Duration: 30,
			Instructions: []string{
				"Record baseline consumption from the electricity bill",
				"Replace bulbs with LED lights",
				"Unplug devices when not in use",
				"Track daily energy-saving actions",
				"Compare bills and submit proof of the reduction",
			},
			VerificationRequired: true,
		},
		{
			ID: "challenge-7", Title: "Wildlife Photography & Documentation",
			Description: "Document local biodiversity through photography and create awareness.",
			Category:    "Biodiversity", Difficulty: models.ChallengeMedium, EcoPoints: 150, Duration: 14,
			Instructions: []string{
				"Find a local area with wildlife",
				"Photograph birds, insects and plants",
				"Research and identify species names",
				"Submit your photo collection and species list",
			},
			VerificationRequired: true,
		},
		{
			ID: "challenge-8", Title: "Eco-Friendly Transportation Week",
			Description: "Use only eco-friendly transportation methods for one week.",
			Category:    "Transportation", Difficulty: models.ChallengeMedium, EcoPoints: 130, Duration: 7,
			Instructions: []string{
				"Walk, cycle, or use public transport for all trips",
				"Calculate the carbon emissions you saved",
				"Document your daily commute with photos",
				"Submit your travel log",
			},
			VerificationRequired: true,
		},
	}
}
