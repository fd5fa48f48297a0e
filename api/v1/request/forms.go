package request

// RegisterForm mirrors the registration page fields. Bounds follow the
// column sizes; the human checkbox must arrive checked.
type RegisterForm struct {
	Name            string `form:"name" binding:"required,notblank,max=50"`
	Email           string `form:"email" binding:"required,email,max=50"`
	Password        string `form:"password" binding:"required,max=50"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
	IAmHuman        string `form:"i_am_human" binding:"required"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email,max=50"`
	Password string `form:"password" binding:"required,max=50"`
	Remember bool   `form:"remember_me"`
}

type CategoryForm struct {
	Description string `form:"description" binding:"required,notblank,max=100"`
}

// NoteForm covers add and edit; the photo file rides the multipart body
// separately.
type NoteForm struct {
	Description string `form:"description" binding:"required,notblank,max=200"`
	Text        string `form:"text" binding:"required,notblank,max=500"`
	CategoryID  uint64 `form:"category" binding:"required"`
}

// NoteFilterForm narrows the notes listing. Both filters are optional and
// combine independently.
type NoteFilterForm struct {
	Category    uint64 `form:"category"`
	Description string `form:"description" binding:"omitempty,max=100"`
}
