package model

type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// TodoPatch is a partial update: nil fields are left unchanged.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// Apply overwrites the fields present in the patch.
func (p TodoPatch) Apply(t *Todo) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
