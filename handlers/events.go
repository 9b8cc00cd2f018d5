package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"societyhub/models"
)

// ListEvents is the public event listing; private events are hidden.
func ListEvents(c *gin.Context) {
	ctx, cancel := reqContext()
	defer cancel()

	events, err := eventService.List(ctx, true)
	if err != nil {
		writeError(c, err, "Failed to fetch events")
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func GetEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	event, err := eventService.Get(ctx, id)
	if err != nil {
		writeError(c, err, "Failed to fetch event")
		return
	}
	if !event.IsPublic {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	// The UI computes "sold out" client side; serve the count so it can.
	response := gin.H{"event": event}
	if event.MaxSignups > 0 {
		count, err := eventService.SignupCount(ctx, id)
		if err == nil {
			response["signupCount"] = count
			response["soldOut"] = count >= event.MaxSignups
		}
	}
	c.JSON(http.StatusOK, response)
}

type SignupRequest struct {
	EventID  string            `json:"eventId" binding:"required"`
	FormData map[string]string `json:"formData" binding:"required"`
}

// EventSignup accepts a public signup for an event.
func EventSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventID, err := primitive.ObjectIDFromHex(req.EventID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	signup, err := eventService.Signup(ctx, eventID, req.FormData, c.ClientIP())
	if err != nil {
		writeError(c, err, "Failed to sign up")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Signed up successfully",
		"signupId": signup.ID.Hex(),
	})
}
