package models

import "github.com/google/uuid"

// assignID gives a new row its identifier before insert. Rows that already
// carry one (imports, tests) keep it.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
