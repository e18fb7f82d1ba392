package table

import (
	"context"
	"errors"
	"reflect"

	"ims/internal/validation"
	custom_error "ims/pkg/errors"
)

type Mode string

const (
	ModeClosed  Mode = "closed"
	ModeViewing Mode = "viewing"
	ModeAdding  Mode = "adding"
	ModeEditing Mode = "editing"
)

var (
	ErrModalOpen   = errors.New("another dialog is already open")
	ErrModalClosed = errors.New("no editable dialog is open")
)

// ModalState is the dialog of one controller. Draft holds the form being edited
// and is reset to defaults every time the dialog closes. Draft is a copy; edits
// to it reach the dialog only through SetDraft.
type ModalState[T any, F Form] struct {
	Mode   Mode              `json:"mode"`
	Item   *T                `json:"item,omitempty"`
	Draft  F                 `json:"draft"`
	Errors validation.Errors `json:"errors,omitempty"`
}

type modal[T any, F Form] struct {
	mode   Mode
	item   *T
	draft  F
	errors validation.Errors
}

func (m *modal[T, F]) reset(def *Definition[T, F]) {
	m.mode = ModeClosed
	m.item = nil
	m.draft = def.NewForm()
	m.errors = nil
}

func (c *Controller[T, F]) Modal() ModalState[T, F] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return ModalState[T, F]{
		Mode:   c.modal.mode,
		Item:   c.modal.item,
		Draft:  copyForm(c.modal.draft),
		Errors: c.modal.errors,
	}
}

func (c *Controller[T, F]) OpenAdd() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal.mode != ModeClosed {
		return ErrModalOpen
	}
	c.modal.mode = ModeAdding
	c.modal.draft = c.def.NewForm()
	return nil
}

func (c *Controller[T, F]) OpenView(id int) error {
	return c.open(ModeViewing, id)
}

func (c *Controller[T, F]) OpenEdit(id int) error {
	return c.open(ModeEditing, id)
}

func (c *Controller[T, F]) open(mode Mode, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal.mode != ModeClosed {
		return ErrModalOpen
	}
	item, err := c.find(id)
	if err != nil {
		return err
	}

	c.modal.mode = mode
	c.modal.item = &item
	if mode == ModeEditing {
		c.modal.draft = c.def.FormOf(item)
	}
	return nil
}

// SetDraft replaces the draft of an add or edit dialog.
func (c *Controller[T, F]) SetDraft(form F) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal.mode != ModeAdding && c.modal.mode != ModeEditing {
		return ErrModalClosed
	}
	c.modal.draft = copyForm(form)
	c.modal.errors = nil
	return nil
}

// SubmitModal creates or updates from the draft and closes the dialog once the
// upstream accepts the change, even if the list refresh afterwards fails.
// Field errors stay attached to the open dialog.
func (c *Controller[T, F]) SubmitModal(ctx context.Context) error {
	c.mu.RLock()
	mode, item, draft := c.modal.mode, c.modal.item, copyForm(c.modal.draft)
	c.mu.RUnlock()

	var err error
	switch mode {
	case ModeAdding:
		err = c.Create(ctx, draft)
	case ModeEditing:
		err = c.Update(ctx, c.def.ID(*item), draft)
	default:
		return ErrModalClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.modal.mode != mode {
		return err
	}

	var (
		validationErr *custom_error.ValidationError
		resyncErr     *ResyncError
	)
	switch {
	case err == nil, errors.As(err, &resyncErr):
		c.modal.reset(c.def)
	case errors.As(err, &validationErr):
		c.modal.errors = validationErr.Fields
	}
	return err
}

func (c *Controller[T, F]) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modal.reset(c.def)
}

// copyForm returns a copy of a struct-pointer form whose slice fields no longer
// share backing arrays with form. Uploads are shared; their content is never
// written after attachment.
func copyForm[F Form](form F) F {
	v := reflect.ValueOf(form)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return form
	}

	dup := reflect.New(v.Elem().Type())
	dup.Elem().Set(v.Elem())
	for i := 0; i < dup.Elem().NumField(); i++ {
		field := dup.Elem().Field(i)
		if field.Kind() != reflect.Slice || field.IsNil() || !field.CanSet() {
			continue
		}
		copied := reflect.MakeSlice(field.Type(), field.Len(), field.Len())
		reflect.Copy(copied, field)
		field.Set(copied)
	}

	return dup.Interface().(F)
}
