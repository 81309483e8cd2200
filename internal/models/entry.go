package models

// SourceEntry is one caller supplied place to convert.
type SourceEntry struct {
	Index     int    `json:"index"`     // Index is the caller index, 1-based position by default.
	Name      string `json:"name"`      // Name is the place name as entered.
	Address   string `json:"address"`   // Address is the place address as entered.
	SourceURL string `json:"sourceUrl"` // SourceURL is a link to the place on the source provider.
	RawBlock  string `json:"rawBlock"`  // RawBlock is the untouched text block the entry was parsed from.
}
