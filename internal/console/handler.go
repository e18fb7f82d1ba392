package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"ims/internal/client"
	"ims/internal/table"
	"ims/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

const ConfirmYes = "yes"

// StatusResponse answers an applied change. Warning is set when the list could
// not be refreshed afterwards.
type StatusResponse struct {
	table.Status
	Warning string `json:"warning,omitempty"`
}

type ModalResponse[T any, F table.Form] struct {
	table.ModalState[T, F]
	Warning string `json:"warning,omitempty"`
}

type ResourceHandler[T any, F table.Form] struct {
	controller *table.Controller[T, F]
	logger     *zap.Logger
}

func NewResourceHandler[T any, F table.Form](controller *table.Controller[T, F], logger *zap.Logger) *ResourceHandler[T, F] {
	return &ResourceHandler[T, F]{
		controller: controller,
		logger:     logger.With(zap.String("resource", controller.Definition().Name)),
	}
}

func (h *ResourceHandler[T, F]) Name() string {
	return h.controller.Definition().Name
}

func (h *ResourceHandler[T, F]) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/schema", h.GetSchema)
	router.GET("", h.GetList)
	router.POST("/reload", h.Reload)
	router.GET("/modal", h.GetModal)
	router.POST("/modal", h.OpenModal)
	router.PUT("/modal/draft", h.UpdateDraft)
	router.POST("/modal/submit", h.SubmitModal)
	router.DELETE("/modal", h.CloseModal)
	router.GET("/:id", h.GetRecord)
	router.POST("", h.CreateRecord)
	router.PUT("/:id", h.UpdateRecord)
	router.DELETE("/:id", h.DeleteRecord)
}

func (h *ResourceHandler[T, F]) Describe() Description {
	def := h.controller.Definition()

	columns := make([]ColumnInfo, 0, len(def.Columns))
	for _, col := range def.Columns {
		columns = append(columns, ColumnInfo{Key: col.Key, Label: col.Label, Kind: col.Kind, Searchable: col.Searchable})
	}
	var filters []FilterInfo
	for _, f := range def.Filters {
		filters = append(filters, FilterInfo{Key: f.Key, Label: f.Label, Options: f.Options})
	}

	return Description{
		Resource:      def.Name,
		Noun:          def.Noun,
		Create:        def.SchemaFor(table.OpCreate),
		Update:        def.SchemaFor(table.OpUpdate),
		Columns:       columns,
		Filters:       filters,
		StatusOptions: def.StatusOptions,
		DefaultSort:   def.DefaultSort,
	}
}

func (h *ResourceHandler[T, F]) List(ctx context.Context, criteria table.Criteria, reload bool) (Listing, error) {
	var err error
	if reload {
		err = h.controller.Load(ctx)
	} else {
		err = h.controller.EnsureLoaded(ctx)
	}
	if err != nil {
		return Listing{}, err
	}

	page := h.controller.View(criteria)
	rows := make([]Row, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, h.row(item))
	}

	return Listing{
		Columns:  h.Describe().Columns,
		Rows:     rows,
		Items:    page.Items,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
		Status:   h.controller.Status(),
	}, nil
}

func (h *ResourceHandler[T, F]) Show(ctx context.Context, id int) (Row, error) {
	item, err := h.find(ctx, id)
	if err != nil {
		return Row{}, err
	}
	return h.row(item), nil
}

func (h *ResourceHandler[T, F]) Create(ctx context.Context, input Input) error {
	form, err := h.decode(h.controller.Definition().NewForm(), table.OpCreate, input)
	if err != nil {
		return err
	}
	return h.controller.Create(ctx, form)
}

// Update applies input on top of the record's current values.
func (h *ResourceHandler[T, F]) Update(ctx context.Context, id int, input Input) error {
	item, err := h.find(ctx, id)
	if err != nil {
		return err
	}
	form, err := h.decode(h.controller.Definition().FormOf(item), table.OpUpdate, input)
	if err != nil {
		return err
	}
	return h.controller.Update(ctx, id, form)
}

func (h *ResourceHandler[T, F]) Delete(ctx context.Context, id int, confirm func(prompt string) bool) error {
	if err := h.controller.EnsureLoaded(ctx); err != nil {
		return err
	}
	return h.controller.Remove(ctx, id, confirm)
}

func (h *ResourceHandler[T, F]) Close() {
	h.controller.Close()
}

func (h *ResourceHandler[T, F]) find(ctx context.Context, id int) (T, error) {
	if err := h.controller.EnsureLoaded(ctx); err != nil {
		var zero T
		return zero, err
	}
	return h.controller.Find(id)
}

func (h *ResourceHandler[T, F]) row(item T) Row {
	def := h.controller.Definition()
	cells := make([]string, 0, len(def.Columns))
	for _, col := range def.Columns {
		cells = append(cells, col.Value(item))
	}
	return Row{ID: def.ID(item), Cells: cells, Item: item}
}

// decode layers input.Data, then input.Set, then input.Files onto form.
func (h *ResourceHandler[T, F]) decode(form F, op table.Operation, input Input) (F, error) {
	schema := h.controller.Definition().SchemaFor(op)

	if len(input.Data) > 0 {
		if err := json.Unmarshal(input.Data, form); err != nil {
			return form, &InputError{Message: fmt.Sprintf("invalid form data: %v", err)}
		}
	}

	if len(input.Set) > 0 {
		for name := range input.Set {
			if _, ok := schema.Field(name); !ok {
				return form, &InputError{Message: fmt.Sprintf("unknown field %q", name)}
			}
		}
		data, err := json.Marshal(input.Set)
		if err != nil {
			return form, err
		}
		if err := json.Unmarshal(data, form); err != nil {
			return form, &InputError{Message: fmt.Sprintf("invalid field value: %v", err)}
		}
	}

	for name, upload := range input.Files {
		uploader, ok := any(form).(table.Uploader)
		if !ok || !uploader.Attach(name, upload) {
			return form, &InputError{Message: fmt.Sprintf("%s has no file field %q", h.Name(), name)}
		}
	}

	return form, nil
}

func (h *ResourceHandler[T, F]) GetSchema(c *gin.Context) {
	c.JSON(http.StatusOK, h.Describe())
}

func (h *ResourceHandler[T, F]) GetList(c *gin.Context) {
	criteria, err := h.criteria(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	listing, err := h.List(c.Request.Context(), criteria, c.Query("reload") == "true")
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *ResourceHandler[T, F]) Reload(c *gin.Context) {
	if err := h.controller.Load(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.controller.Status())
}

func (h *ResourceHandler[T, F]) GetRecord(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	item, err := h.find(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T, F]) CreateRecord(c *gin.Context) {
	form, err := h.bind(c, h.controller.Definition().NewForm())
	if err != nil {
		h.respondError(c, err)
		return
	}

	err = h.controller.Create(c.Request.Context(), form)
	warning, accepted := h.resyncWarning(err)
	if !accepted {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, StatusResponse{Status: h.controller.Status(), Warning: warning})
}

func (h *ResourceHandler[T, F]) UpdateRecord(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	item, err := h.find(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	form, err := h.bind(c, h.controller.Definition().FormOf(item))
	if err != nil {
		h.respondError(c, err)
		return
	}

	err = h.controller.Update(c.Request.Context(), id, form)
	warning, accepted := h.resyncWarning(err)
	if !accepted {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: h.controller.Status(), Warning: warning})
}

func (h *ResourceHandler[T, F]) DeleteRecord(c *gin.Context) {
	id, ok := h.id(c)
	if !ok {
		return
	}

	confirmed := strings.EqualFold(c.Query("confirm"), ConfirmYes)
	err := h.Delete(c.Request.Context(), id, func(string) bool { return confirmed })
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s %d deleted", h.controller.Definition().Noun, id)})
}

func (h *ResourceHandler[T, F]) GetModal(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.Modal())
}

func (h *ResourceHandler[T, F]) OpenModal(c *gin.Context) {
	var req struct {
		Mode table.Mode `json:"mode" binding:"required"`
		ID   int        `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	var err error
	switch req.Mode {
	case table.ModeAdding:
		err = h.controller.OpenAdd()
	case table.ModeViewing, table.ModeEditing:
		if err = h.controller.EnsureLoaded(c.Request.Context()); err != nil {
			break
		}
		if req.Mode == table.ModeViewing {
			err = h.controller.OpenView(req.ID)
		} else {
			err = h.controller.OpenEdit(req.ID)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid modal mode", "details": string(req.Mode)})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.controller.Modal())
}

// UpdateDraft replaces the draft of the open dialog with the request body.
func (h *ResourceHandler[T, F]) UpdateDraft(c *gin.Context) {
	form, err := h.bind(c, h.controller.Definition().NewForm())
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.controller.SetDraft(form); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.controller.Modal())
}

func (h *ResourceHandler[T, F]) SubmitModal(c *gin.Context) {
	err := h.controller.SubmitModal(c.Request.Context())
	warning, accepted := h.resyncWarning(err)
	if !accepted {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModalResponse[T, F]{ModalState: h.controller.Modal(), Warning: warning})
}

func (h *ResourceHandler[T, F]) CloseModal(c *gin.Context) {
	h.controller.CloseModal()
	c.JSON(http.StatusOK, h.controller.Modal())
}

func (h *ResourceHandler[T, F]) id(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "details": c.Param("id")})
		return 0, false
	}
	return id, true
}

// bind reads a JSON or multipart request onto form. Multipart file parts are
// attached for every file field the schema declares.
func (h *ResourceHandler[T, F]) bind(c *gin.Context, form F) (F, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		if err := c.ShouldBindJSON(form); err != nil {
			return form, &InputError{Message: fmt.Sprintf("invalid request payload: %v", err)}
		}
		return form, nil
	}

	if err := c.ShouldBindWith(form, binding.FormMultipart); err != nil {
		return form, &InputError{Message: fmt.Sprintf("invalid form payload: %v", err)}
	}

	uploader, ok := any(form).(table.Uploader)
	if !ok {
		return form, nil
	}
	for _, field := range h.controller.Definition().SchemaFor(table.OpCreate).Fields {
		if field.Kind != validation.KindFile {
			continue
		}
		upload, err := readUpload(c, field.Name)
		if err != nil {
			return form, err
		}
		if upload != nil {
			uploader.Attach(field.Name, upload)
		}
	}

	return form, nil
}

func readUpload(c *gin.Context, name string) (*client.Upload, error) {
	header, err := c.FormFile(name)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, &InputError{Message: fmt.Sprintf("invalid file %q: %v", name, err)}
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", name, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", name, err)
	}

	return &client.Upload{Filename: header.Filename, Content: content}, nil
}

func (h *ResourceHandler[T, F]) criteria(c *gin.Context) (table.Criteria, error) {
	criteria := table.Criteria{
		Search:     c.Query("search"),
		SortKey:    c.Query("sort"),
		Descending: strings.EqualFold(c.Query("dir"), "desc"),
		Status:     c.Query("status"),
	}

	for _, f := range h.controller.Definition().Filters {
		if value, ok := c.GetQuery(f.Key); ok {
			if criteria.Filters == nil {
				criteria.Filters = make(map[string]string)
			}
			criteria.Filters[f.Key] = value
		}
	}

	var err error
	if criteria.Page, err = queryInt(c, "page"); err != nil {
		return criteria, err
	}
	if criteria.PageSize, err = queryInt(c, "page_size"); err != nil {
		return criteria, err
	}

	return criteria, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	value := c.Query(key)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return n, nil
}
