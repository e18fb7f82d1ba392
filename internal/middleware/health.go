package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
	// Resources is the number of console resources mounted.
	Resources int `json:"resources"`
}

var (
	healthStatus = HealthStatus{
		Status:      "ok",
		LastChecked: time.Now(),
		Uptime:      "0s",
		Version:     "dev",
	}
	healthMutex      sync.Mutex
	startTime        = time.Now()
	lastResponse     []byte
	lastResponseTime time.Time
	cacheDuration    = 5 * time.Second
)

// HealthCheckMiddleware serves the health status, cached for a few seconds.
func HealthCheckMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		healthMutex.Lock()
		defer healthMutex.Unlock()

		if time.Since(lastResponseTime) < cacheDuration && lastResponse != nil {
			c.Data(http.StatusOK, "application/json", lastResponse)
			return
		}

		healthStatus.Uptime = time.Since(startTime).Round(time.Second).String()
		healthStatus.LastChecked = time.Now()

		response, err := json.Marshal(healthStatus)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode health status"})
			return
		}
		lastResponse = response
		lastResponseTime = time.Now()

		c.Data(http.StatusOK, "application/json", response)
	}
}

func UpdateHealthStatus(status string) {
	healthMutex.Lock()
	defer healthMutex.Unlock()

	healthStatus.Status = status
	healthStatus.LastChecked = time.Now()
	lastResponse = nil
}

func SetVersion(version string) {
	healthMutex.Lock()
	defer healthMutex.Unlock()

	healthStatus.Version = version
	lastResponse = nil
}

func SetResourceCount(count int) {
	healthMutex.Lock()
	defer healthMutex.Unlock()

	healthStatus.Resources = count
	lastResponse = nil
}
