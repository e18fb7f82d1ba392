// Package staff manages employee accounts.
package staff

import (
	"fmt"
	"strings"

	"ims/internal/table"
	"ims/pkg/metadata"
	"ims/pkg/models"
	"ims/pkg/roles"

	"github.com/tidwall/gjson"
)

var Paths = table.Paths{
	List:   "/list-employee-accounts",
	Create: "/create",
	Update: func(id int) string { return fmt.Sprintf("/update/%d", id) },
	Delete: func(id int) string { return fmt.Sprintf("/delete/%d", id) },
}

type Options struct {
	// ImageBaseURL prefixes the stored photo file name.
	ImageBaseURL string
	// DefaultImage is shown for employees without a photo.
	DefaultImage string
}

func Definition(opts Options) *table.Definition[models.Employee, *Form] {
	return &table.Definition[models.Employee, *Form]{
		Name:         "staff",
		Noun:         "employee",
		Paths:        Paths,
		CreateSchema: CreateSchema,
		UpdateSchema: UpdateSchema,
		Normalize: func(raw gjson.Result) (models.Employee, error) {
			return normalize(raw, opts)
		},
		ID: func(e models.Employee) int { return e.ID },
		Columns: []table.Column[models.Employee]{
			table.TextColumn("name", "Name", true, func(e models.Employee) string { return e.FullName }),
			table.TextColumn("email", "Email", true, func(e models.Employee) string { return e.Email }),
			table.TextColumn("role", "Role", false, func(e models.Employee) string { return e.Role }),
			table.TextColumn("phone", "Phone", false, func(e models.Employee) string { return e.Phone }),
			table.TextColumn("hireDate", "Hire Date", false, func(e models.Employee) string { return e.HireDate }),
			table.TextColumn("status", "Status", false, func(e models.Employee) string { return e.Status }),
		},
		DefaultSort:   "name",
		Status:        func(e models.Employee) string { return e.Status },
		StatusOptions: []string{metadata.StatusActive.String(), metadata.StatusInactive.String()},
		Filters: []table.Filter[models.Employee]{
			{Key: "role", Label: "Role", Options: roles.All(), Value: func(e models.Employee) string { return e.Role }},
		},
		NewForm: func() *Form { return &Form{} },
		FormOf:  formOf,
	}
}

func formOf(e models.Employee) *Form {
	blank := func(value string) string {
		if value == NotAvailable {
			return ""
		}
		return value
	}

	form := &Form{
		Name:     e.FullName,
		Email:    blank(e.Email),
		Role:     e.Role,
		Phone:    blank(e.Phone),
		HireDate: e.HireDate,
	}
	if !roles.Role(e.Role).UsesPasscode() {
		form.Username = e.Username
	}
	return form
}

func normalize(raw gjson.Result, opts Options) (models.Employee, error) {
	id, err := table.RequireID(raw, "userID", "UserID", "id")
	if err != nil {
		return models.Employee{}, err
	}

	role := strings.ToLower(table.Lookup(raw, "userRole", "role").String())

	employee := models.Employee{
		ID:       id,
		FullName: table.Lookup(raw, "fullName", "name").String(),
		Username: table.Lookup(raw, "username").String(),
		Email:    orDefault(table.Lookup(raw, "emailAddress", "email").String(), NotAvailable),
		Role:     role,
		Phone:    orDefault(table.Lookup(raw, "phoneNumber", "phone").String(), NotAvailable),
		HireDate: table.DatePart(table.Lookup(raw, "hireDate").String()),
		Status:   metadata.StatusActive.String(),
		ImageURL: imageURL(table.Lookup(raw, "uploadImage", "image").String(), opts),
	}

	if employee.Username == "" && roles.Role(role).UsesPasscode() {
		employee.Username = CashierUsername
	}
	if status, err := metadata.NewStatus(table.Lookup(raw, "status", "Status").String()); err == nil &&
		(status == metadata.StatusActive || status == metadata.StatusInactive) {
		employee.Status = status.String()
	}

	return employee, nil
}

func imageURL(file string, opts Options) string {
	switch {
	case file == "":
		return opts.DefaultImage
	case strings.HasPrefix(file, "http://"), strings.HasPrefix(file, "https://"):
		return file
	default:
		return strings.TrimSuffix(opts.ImageBaseURL, "/") + "/" + strings.TrimPrefix(file, "/")
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
