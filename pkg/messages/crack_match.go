package messages

import (
	"encoding/xml"
	"time"
)

// CrackMatch is published to the broker and stored for every recovered
// password.
type CrackMatch struct {
	XMLName   xml.Name  `xml:"CrackMatch" json:"-" bson:"-"`
	Id        string    `xml:"Id" json:"id" bson:"_id"`
	RunId     string    `xml:"RunId" json:"runId" bson:"run_id"`
	Candidate string    `xml:"Candidate" json:"candidate" bson:"candidate"`
	Word      string    `xml:"Word" json:"word" bson:"word"`
	Hash      string    `xml:"Hash" json:"hash" bson:"hash"`
	HashIndex int       `xml:"HashIndex" json:"hashIndex" bson:"hash_index"`
	FoundAt   time.Time `xml:"FoundAt" json:"foundAt" bson:"found_at"`
}
