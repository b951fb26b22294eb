package validation

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type RegisterForm struct {
	FirstName       string `form:"first_name" validate:"required,max=50"`
	LastName        string `form:"last_name" validate:"required,max=50"`
	Username        string `form:"username" validate:"required,min=3,max=50"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

type SubscribeForm struct {
	Email string `form:"email" validate:"subscriber_email"`
}

// ApplicationForm carries the text fields of the apply form; the CV file is checked separately.
type ApplicationForm struct {
	FullName    string `form:"full_name" validate:"required,max=100"`
	Email       string `form:"email" validate:"required,email"`
	Phone       string `form:"phone" validate:"required,max=30"`
	CoverLetter string `form:"cover_letter" validate:"max=5000"`
}

type PostForm struct {
	Title    string `form:"title" validate:"required,max=200"`
	Content  string `form:"content" validate:"required"`
	Type     string `form:"type" validate:"required,oneof=ARTICLE JOB"`
	ImageURL string `form:"image_url" validate:"omitempty,url"`
	Location string `form:"location" validate:"max=100"`
	Contract string `form:"contract" validate:"max=100"`
}

type CommentForm struct {
	Content string `form:"content" validate:"required,max=2000"`
}

type ProfileForm struct {
	FirstName string `form:"first_name" validate:"max=50"`
	LastName  string `form:"last_name" validate:"max=50"`
	Email     string `form:"email" validate:"omitempty,email"`
	AvatarURL string `form:"avatar_url" validate:"omitempty,url"`
	Street    string `form:"street" validate:"max=100"`
	HouseNr   string `form:"house_nr" validate:"max=10"`
	City      string `form:"city" validate:"max=100"`
	Zip       string `form:"zip" validate:"max=10"`
}

type UserEditForm struct {
	Username  string `form:"username" validate:"required,max=50"`
	FirstName string `form:"first_name" validate:"max=50"`
	LastName  string `form:"last_name" validate:"max=50"`
	Email     string `form:"email" validate:"omitempty,email"`
	Role      string `form:"role" validate:"required,oneof=USER MANAGER ADMIN"`
}
