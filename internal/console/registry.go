package console

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
)

// Registry holds the mounted resources in registration order.
type Registry struct {
	resources []Resource
	byName    map[string]Resource
}

func NewRegistry(resources ...Resource) *Registry {
	r := &Registry{byName: make(map[string]Resource, len(resources))}
	for _, resource := range resources {
		r.Add(resource)
	}
	return r
}

func (r *Registry) Add(resource Resource) {
	if _, exists := r.byName[resource.Name()]; exists {
		panic(fmt.Sprintf("resource %q registered twice", resource.Name()))
	}
	r.resources = append(r.resources, resource)
	r.byName[resource.Name()] = resource
}

func (r *Registry) Get(name string) (Resource, error) {
	resource, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q (available: %v)", name, r.Names())
	}
	return resource, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.resources))
	for _, resource := range r.resources {
		names = append(names, resource.Name())
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	return len(r.resources)
}

// RegisterRoutes mounts every resource under /<name>.
func (r *Registry) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/resources", func(c *gin.Context) {
		descriptions := make([]Description, 0, len(r.resources))
		for _, resource := range r.resources {
			descriptions = append(descriptions, resource.Describe())
		}
		c.JSON(http.StatusOK, descriptions)
	})

	for _, resource := range r.resources {
		resource.RegisterRoutes(router.Group("/" + resource.Name()))
	}
}

func (r *Registry) Close() {
	for _, resource := range r.resources {
		resource.Close()
	}
}
