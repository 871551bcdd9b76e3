package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNeedsConfiguration(t *testing.T) {
	assert.True(t, (&Config{}).NeedsConfiguration())
	assert.True(t, (&Config{ServerURL: "https://soc.example.com"}).NeedsConfiguration())
	assert.True(t, (&Config{BuildingID: "B1"}).NeedsConfiguration())
	assert.True(t, (&Config{ServerURL: "  ", BuildingID: "B1"}).NeedsConfiguration())
	assert.False(t, (&Config{ServerURL: "https://soc.example.com", BuildingID: "B1"}).NeedsConfiguration())
}

func TestValidate(t *testing.T) {
	assert.True(t, (&Config{ServerURL: "https://soc.example.com", BuildingID: "B1"}).Validate())
	assert.True(t, (&Config{ServerURL: "http://localhost:8080", BuildingID: "B1"}).Validate())

	assert.False(t, (&Config{}).Validate())
	assert.False(t, (&Config{ServerURL: "soc.example.com", BuildingID: "B1"}).Validate(), "scheme is required")
	assert.False(t, (&Config{ServerURL: "ftp://soc.example.com", BuildingID: "B1"}).Validate())
}

func TestPollIntervalClamping(t *testing.T) {
	assert.Equal(t, 10*time.Second, (&Config{}).PollInterval())
	assert.Equal(t, 10*time.Second, (&Config{PollIntervalSec: 3}).PollInterval(), "sub-5s values fall back to the default")
	assert.Equal(t, 5*time.Second, (&Config{PollIntervalSec: 5}).PollInterval())
	assert.Equal(t, time.Minute, (&Config{PollIntervalSec: 60}).PollInterval())
}

func TestNoticeSyncInterval(t *testing.T) {
	assert.Equal(t, 10*time.Minute, (&Config{}).NoticeSyncInterval())
	assert.Equal(t, 5*time.Minute, (&Config{NoticeSyncMinutes: 5}).NoticeSyncInterval())
}
