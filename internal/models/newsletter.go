package models

import "time"

// Newsletter is one edition of the digest. It is built once per pipeline run
// and immutable afterwards; the articles slice always holds exactly five
// entries when the curated pool was non-empty.
type Newsletter struct {
	Date     time.Time `json:"date"`
	Articles []Article `json:"articles"`
	Intro    string    `json:"intro"`
	Outro    string    `json:"outro"`
	Subject  string    `json:"subject"`
}
