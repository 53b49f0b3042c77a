// Package forms validates user input for the patient and booking
// screens before anything is sent to the backend. Validation returns
// field-keyed messages so a screen can render each problem next to the
// input that caused it.
package forms

// Errors maps a field name to its validation message. An empty map
// means the input is valid.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

// Get returns the message for a field, or "" when the field is fine.
func (e Errors) Get(field string) string { return e[field] }

// Clear removes the message for one field. Screens call this when the
// user edits a field so the stale complaint disappears immediately.
func (e Errors) Clear(field string) { delete(e, field) }

// Field names shared by the validators and the screens.
const (
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldDateOfBirth = "date_of_birth"
	FieldGender      = "gender"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldStreet      = "street"
	FieldCity        = "city"
	FieldState       = "state"
	FieldZip         = "zip"
	FieldTypeID      = "appointment_type_id"
	FieldDate        = "date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
)
