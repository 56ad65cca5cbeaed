package roster

// Default returns the built-in exhibition roster.
func Default() *Roster {
	r, err := New(defaultTeams())
	if err != nil {
		panic(err)
	}
	return r
}

func defaultTeams() []Team {
	return []Team{
		{
			ID:           1,
			Name:         "Lakers",
			Color:        "#552583",
			Logo:         "lakers.png",
			Contributors: []string{"LeBron James", "Anthony Davis", "Austin Reaves", "D'Angelo Russell", "Rui Hachimura"},
		},
		{
			ID:           2,
			Name:         "Celtics",
			Color:        "#007A33",
			Logo:         "celtics.png",
			Contributors: []string{"Jayson Tatum", "Jaylen Brown", "Kristaps Porzingis", "Derrick White", "Al Horford"},
		},
		{
			ID:           3,
			Name:         "Warriors",
			Color:        "#1D428A",
			Logo:         "warriors.png",
			Contributors: []string{"Stephen Curry", "Klay Thompson", "Andrew Wiggins", "Jonathan Kuminga", "Draymond Green"},
		},
		{
			ID:           4,
			Name:         "Bulls",
			Color:        "#CE1141",
			Logo:         "bulls.png",
			Contributors: []string{"Zach LaVine", "Nikola Vucevic", "Coby White", "Patrick Williams", "Alex Caruso"},
		},
		{
			ID:           5,
			Name:         "Heat",
			Color:        "#98002E",
			Logo:         "heat.png",
			Contributors: []string{"Jimmy Butler", "Bam Adebayo", "Tyler Herro", "Nikola Jovic", "Duncan Robinson"},
		},
	}
}
