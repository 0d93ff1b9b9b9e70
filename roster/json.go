/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"encoding/json"
	"fmt"

	"github.com/mikeb26/pbrotation/sched"
	"github.com/tidwall/gjson"
)

// keys tried, in order, when the document is an object rather than an array
var rosterKeys = []string{LocalStorageKey, "players", "participants"}

// ParseJSON accepts a plain array of participants, an object holding the
// array under one of rosterKeys, or a localStorage dump where the
// "pb-roster" value is itself a JSON encoded string. Ids and ratings may be
// numbers or strings.
func ParseJSON(data []byte) ([]sched.Participant, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("roster.json: invalid JSON document")
	}

	list, err := rosterArray(gjson.ParseBytes(data))
	if err != nil {
		return nil, err
	}

	var participants []sched.Participant
	list.ForEach(func(_, el gjson.Result) bool {
		var p sched.Participant
		p, err = newParticipant(el.Get("id").String(), el.Get("name").String(),
			el.Get("rating").Float(), el.Get("gender").String())
		if err != nil {
			err = fmt.Errorf("roster.json: entry %v: %w", len(participants), err)
			return false
		}
		participants = append(participants, p)
		return true
	})
	if err != nil {
		return nil, err
	}

	return finish(participants)
}

func rosterArray(root gjson.Result) (gjson.Result, error) {
	if root.IsArray() {
		return root, nil
	}
	if root.IsObject() {
		for _, key := range rosterKeys {
			v := root.Get(key)
			if v.Type == gjson.String {
				// localStorage values are strings holding JSON
				if !gjson.Valid(v.Str) {
					return v, fmt.Errorf("roster.json: %v holds invalid JSON", key)
				}
				v = gjson.Parse(v.Str)
			}
			if v.IsArray() {
				return v, nil
			}
		}
	}
	return root, fmt.Errorf("%w: no participant array in document",
		ErrNoParticipants)
}

// MarshalJSON renders participants in the same array form ParseJSON reads.
func MarshalJSON(participants []sched.Participant) ([]byte, error) {
	return json.MarshalIndent(participants, "", "  ")
}
