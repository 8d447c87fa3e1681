// Package telephony implements the provider-facing pieces of the call stack:
// signed grant tokens and the XML routing documents the provider executes.
package telephony

import (
	"encoding/xml"
	"fmt"
)

// VoiceResponse is the root of a call-routing document.
type VoiceResponse struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []interface{}
}

// Dial connects the in-progress call to a number or a named client.
type Dial struct {
	XMLName  xml.Name `xml:"Dial"`
	CallerID string   `xml:"callerId,attr,omitempty"`
	Number   string   `xml:"Number,omitempty"`
	Client   string   `xml:"Client,omitempty"`
}

// Say speaks a message to the caller.
type Say struct {
	XMLName xml.Name `xml:"Say"`
	Message string   `xml:",chardata"`
}

func (r *VoiceResponse) Append(verb interface{}) {
	r.Verbs = append(r.Verbs, verb)
}

// String renders the document with the XML declaration the provider expects.
func (r *VoiceResponse) String() (string, error) {
	type alias struct {
		XMLName xml.Name      `xml:"Response"`
		Verbs   []interface{} `xml:",any"`
	}
	out, err := xml.Marshal(&alias{Verbs: r.Verbs})
	if err != nil {
		return "", fmt.Errorf("failed to marshal routing document: %w", err)
	}
	return xml.Header + string(out), nil
}

// DialClient builds a document connecting the call to a software client.
func DialClient(identity, callerID string) *VoiceResponse {
	r := &VoiceResponse{}
	r.Append(&Dial{CallerID: callerID, Client: identity})
	return r
}

// DialNumber builds a document dialing a phone number as callerID.
func DialNumber(number, callerID string) *VoiceResponse {
	r := &VoiceResponse{}
	r.Append(&Dial{CallerID: callerID, Number: number})
	return r
}

// SayMessage builds a document that speaks message and hangs up.
func SayMessage(message string) *VoiceResponse {
	r := &VoiceResponse{}
	r.Append(&Say{Message: message})
	return r
}
