package api

import "encoding/json"

// UserProfile is the signed-in user as reported by the service.
type UserProfile struct {
	Username string `json:"username"`
}

// Folder is a named grouping of forms.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts both "id" and the service's "_id".
func (f *Folder) UnmarshalJSON(b []byte) error {
	type folder Folder
	var aux struct {
		folder
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*f = Folder(aux.folder)
	if f.ID == "" {
		f.ID = aux.MongoID
	}
	return nil
}

// Form is a user-created form record.
type Form struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// UnmarshalJSON accepts both "id" and the service's "_id".
func (f *Form) UnmarshalJSON(b []byte) error {
	type form Form
	var aux struct {
		form
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*f = Form(aux.form)
	if f.ID == "" {
		f.ID = aux.MongoID
	}
	return nil
}

// userRef is the payload of the email resolution endpoint.
type userRef struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
}

func (u userRef) id() string {
	if u.ID != "" {
		return u.ID
	}
	return u.MongoID
}
