package match

// Document is the raw per-league schedule file as published by the
// fixtures source. Field shapes are validated before ingestion; a
// document that decodes but fails validation is a shape error.
type Document struct {
	Metadata DocumentMetadata `json:"metadata" validate:"required"`
	Matches  []RawMatch       `json:"matches" validate:"required,dive"`
}

type DocumentMetadata struct {
	League   string `json:"league" validate:"required"`
	Timezone string `json:"timezone"`
}

// RawMatch is one match exactly as received: date and time are civil
// strings in the source timezone, parsed into an instant at ingestion.
type RawMatch struct {
	ID    int64    `json:"id" validate:"required"`
	Date  string   `json:"date" validate:"required"`
	Time  string   `json:"time" validate:"required"`
	Teams RawTeams `json:"teams" validate:"required"`
}

type RawTeams struct {
	Home Team `json:"home" validate:"required"`
	Away Team `json:"away" validate:"required"`
}
