package model

// Movie is one title in the static catalog.  Text fields are shown as-is;
// Duration is a display string such as "2h 28min" and ReleaseDate is an
// ISO date.
//
// Fields:
//  ID          – catalog identifier ("1".."6").
//  Title       – display title.
//  Genre       – genre label, possibly compound ("Sci-Fi / Action").
//  Rating      – score out of ten.
//  Language    – primary language.
//  Cast        – ordered billing list.
//  Languages   – spoken-language options offered at booking.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Rating      float64  `json:"rating"`
	Language    string   `json:"language"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Cast        []string `json:"cast"`
	Director    string   `json:"director"`
	ReleaseDate string   `json:"release_date"`
	TrailerURL  string   `json:"trailer_url"`
	Languages   []string `json:"languages"`
}

// HeroSlide is a featured entry on the dashboard carousel.
type HeroSlide struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	MovieID  string `json:"movie_id"`
}
