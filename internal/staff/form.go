package staff

import (
	"strings"

	"ims/internal/client"
	"ims/internal/validation"
	"ims/pkg/roles"
)

const (
	NotAvailable      = "N/A"
	CashierUsername   = "cashier"
	MessagePasscode   = "Passcode for Cashier must be exactly 6 digits."
	minPasswordLength = 6
)

var cashier = []string{roles.Cashier.String()}

var passcode = validation.When("role", cashier, validation.ExactDigits(6, MessagePasscode))

var CreateSchema = validation.Schema{
	Resource: "staff",
	Fields: []validation.Field{
		{Name: "name", Label: "Full Name", Kind: validation.KindText, Required: true},
		{Name: "email", Label: "Email Address", Kind: validation.KindText, Required: true, Rules: []validation.Rule{validation.Email}},
		{Name: "role", Label: "Role", Kind: validation.KindEnum, Required: true, Options: roles.All()},
		{Name: "username", Label: "Username", Kind: validation.KindText, Rules: []validation.Rule{
			validation.RequiredWhen("role", roles.Admin.String(), roles.Manager.String()),
		}},
		{Name: "password", Label: "Password", Kind: validation.KindText, Rules: []validation.Rule{
			passcode,
			validation.RequiredWhen("role", roles.Admin.String(), roles.Manager.String()),
			validation.Unless("role", cashier, validation.MinLength(minPasswordLength)),
		}},
		{Name: "phone", Label: "Phone Number", Kind: validation.KindText, Rules: []validation.Rule{validation.Phone}},
		{Name: "hireDate", Label: "Hire Date", Kind: validation.KindDate},
		{Name: "photo", Label: "Photo", Kind: validation.KindFile},
	},
}

// UpdateSchema lets admins and managers leave the password blank to keep the current one.
// A cashier passcode must always be entered again.
var UpdateSchema = validation.Schema{
	Resource: "staff",
	Fields: func() []validation.Field {
		fields := append([]validation.Field(nil), CreateSchema.Fields...)
		for i := range fields {
			if fields[i].Name == "password" {
				fields[i].Rules = []validation.Rule{
					passcode,
					validation.Unless("role", cashier, validation.MinLength(minPasswordLength)),
				}
			}
		}
		return fields
	}(),
}

type Form struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Role     string `json:"role" form:"role"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Phone    string `json:"phone" form:"phone"`
	HireDate string `json:"hireDate" form:"hireDate"`

	Photo *client.Upload `json:"-" form:"-"`
}

func (f *Form) Values() validation.Fields {
	fields := validation.Fields{
		"name":     f.Name,
		"email":    f.Email,
		"role":     f.Role,
		"username": f.Username,
		"password": f.Password,
		"phone":    f.Phone,
		"hireDate": f.HireDate,
	}
	if f.Photo != nil {
		fields["photo"] = f.Photo.Filename
	}
	return fields
}

func (f *Form) Attach(field string, upload *client.Upload) bool {
	if field != "photo" {
		return false
	}
	f.Photo = upload
	return true
}

// Body encodes the account form. Cashiers share the "cashier" username and sign in with their passcode.
func (f *Form) Body() (client.Body, error) {
	role := strings.TrimSpace(f.Role)

	body := &client.MultipartBody{}
	body.Add("fullName", strings.TrimSpace(f.Name))
	body.Add("userRole", role)
	body.Add("emailAddress", strings.TrimSpace(f.Email))

	if phone := strings.TrimSpace(f.Phone); phone != "" && phone != NotAvailable {
		body.Add("phoneNumber", phone)
	}
	if hireDate := strings.TrimSpace(f.HireDate); hireDate != "" {
		body.Add("hireDate", hireDate)
	}
	if f.Password != "" {
		body.Add("password", f.Password)
	}

	if roles.Role(role).UsesPasscode() {
		body.Add("username", CashierUsername)
	} else if username := strings.TrimSpace(f.Username); username != "" {
		body.Add("username", username)
	}

	body.Attach("uploadImage", f.Photo)
	return body, nil
}
