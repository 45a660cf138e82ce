package catalog

import "github.com/iliyamo/cinebook/internal/model"

const trailer = "https://www.youtube.com/embed/dQw4w9WgXcQ"

var heroSlides = []model.HeroSlide{
	{ID: "1", Title: "Stellar Guardians", Subtitle: "The universe needs heroes", MovieID: "1"},
	{ID: "2", Title: "The Deep Unknown", Subtitle: "Dive into the mystery", MovieID: "2"},
	{ID: "3", Title: "Wasteland Rising", Subtitle: "Survive. Adapt. Overcome.", MovieID: "3"},
}

var movies = []model.Movie{
	{
		ID:          "1",
		Title:       "Stellar Guardians",
		Genre:       "Sci-Fi / Action",
		Rating:      8.7,
		Language:    "English",
		Duration:    "2h 28min",
		Description: "In a distant future, a band of unlikely heroes must unite to protect the galaxy from an ancient threat that could destroy all known civilization. With stunning visuals and heart-pounding action, this epic adventure takes you to the far reaches of space.",
		Cast:        []string{"Alex Turner", "Maya Chen", "Ravi Kapoor", "Sofia Martinez"},
		Director:    "James Cameron",
		ReleaseDate: "2026-03-15",
		TrailerURL:  trailer,
		Languages:   []string{"English", "Hindi", "Tamil"},
	},
	{
		ID:          "2",
		Title:       "The Deep Unknown",
		Genre:       "Adventure / Mystery",
		Rating:      8.2,
		Language:    "English",
		Duration:    "2h 15min",
		Description: "An underwater expedition discovers an ancient civilization deep beneath the ocean floor. As they explore the ruins, they uncover secrets that could change humanity's understanding of its own origins.",
		Cast:        []string{"Emma Stone", "Chris Hemsworth", "Lupita Nyong'o"},
		Director:    "Denis Villeneuve",
		ReleaseDate: "2026-02-28",
		TrailerURL:  trailer,
		Languages:   []string{"English", "Spanish"},
	},
	{
		ID:          "3",
		Title:       "Wasteland Rising",
		Genre:       "Action / Drama",
		Rating:      9.1,
		Language:    "English",
		Duration:    "2h 42min",
		Description: "In a post-apocalyptic world, a lone warrior embarks on a perilous journey across the wasteland to find the last safe haven for humanity. A visceral tale of survival and redemption.",
		Cast:        []string{"Tom Hardy", "Zendaya", "Oscar Isaac"},
		Director:    "George Miller",
		ReleaseDate: "2026-04-10",
		TrailerURL:  trailer,
		Languages:   []string{"English", "Hindi"},
	},
	{
		ID:          "4",
		Title:       "Dragon's Quest",
		Genre:       "Animation / Fantasy",
		Rating:      8.5,
		Language:    "English",
		Duration:    "1h 55min",
		Description: "A young adventurer and her magical dragon companion embark on an epic quest to save their enchanted kingdom from an evil sorcerer. A heartwarming tale for all ages.",
		Cast:        []string{"Voice: Anna Taylor", "Voice: Mark Ruffalo"},
		Director:    "Hayao Miyazaki",
		ReleaseDate: "2026-03-01",
		TrailerURL:  trailer,
		Languages:   []string{"English", "Japanese", "Hindi"},
	},
	{
		ID:          "5",
		Title:       "The Last Stand",
		Genre:       "War / Epic",
		Rating:      8.9,
		Language:    "English",
		Duration:    "3h 05min",
		Description: "Based on true events, this epic war drama follows a battalion of soldiers who must hold their ground against impossible odds. A powerful story of courage, sacrifice, and brotherhood.",
		Cast:        []string{"Brad Pitt", "Dev Patel", "Florence Pugh"},
		Director:    "Christopher Nolan",
		ReleaseDate: "2026-05-01",
		TrailerURL:  trailer,
		Languages:   []string{"English", "Hindi"},
	},
	{
		ID:          "6",
		Title:       "Laugh Out Loud",
		Genre:       "Comedy",
		Rating:      7.8,
		Language:    "English",
		Duration:    "1h 48min",
		Description: "When a group of old college friends reunite for a weekend getaway, hilarity ensues as old rivalries, forgotten secrets, and unexpected romances come to the surface.",
		Cast:        []string{"Ryan Reynolds", "Awkwafina", "Kevin Hart"},
		Director:    "Judd Apatow",
		ReleaseDate: "2026-02-14",
		TrailerURL:  trailer,
		Languages:   []string{"English"},
	},
}

var theatres = []model.Theatre{
	{ID: "t1", Name: "CineMax IMAX", Location: "Downtown", ShowTimes: []string{"10:00 AM", "1:30 PM", "5:00 PM", "9:00 PM"}, Price: 350},
	{ID: "t2", Name: "PVR Cinemas", Location: "Mall Road", ShowTimes: []string{"11:00 AM", "2:30 PM", "6:00 PM", "9:30 PM"}, Price: 280},
	{ID: "t3", Name: "INOX Megaplex", Location: "City Center", ShowTimes: []string{"10:30 AM", "2:00 PM", "5:30 PM", "10:00 PM"}, Price: 320},
}
