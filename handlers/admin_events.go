package handlers

import (
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"societyhub/config"
	"societyhub/models"
	"societyhub/services"
)

func AdminCreateEvent(c *gin.Context) {
	var req services.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	event, err := eventService.Create(ctx, c.GetString("uid"), req)
	if err != nil {
		writeError(c, err, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created",
		"event":   event,
	})
}

// AdminListEvents includes private events, unlike the public listing.
func AdminListEvents(c *gin.Context) {
	ctx, cancel := reqContext()
	defer cancel()

	events, err := eventService.List(ctx, false)
	if err != nil {
		writeError(c, err, "Failed to fetch events")
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func AdminUpdateEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	event, err := eventService.Update(ctx, id, req)
	if err != nil {
		writeError(c, err, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated",
		"event":   event,
	})
}

func AdminDeleteEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	if err := eventService.Delete(ctx, id, c.GetString("uid")); err != nil {
		writeError(c, err, "Failed to delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event and its signups deleted"})
}

// AdminUploadEventImage puts the uploaded file on Cloudinary and stores the
// resulting URL on the event.
func AdminUploadEventImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}
	defer file.Close()

	ctx, cancel := reqContext()
	defer cancel()

	if _, err := eventService.Get(ctx, id); err != nil {
		writeError(c, err, "Failed to fetch event")
		return
	}

	cld, err := cloudinary.NewFromURL(config.Global.Uploads.CloudinaryURL)
	if err != nil {
		writeError(c, err, "Image upload is not configured")
		return
	}

	uploadParams := uploader.UploadParams{
		Folder:         "societyhub/events",
		PublicID:       id.Hex(),
		Transformation: "c_limit,w_1200,h_800,q_auto",
	}
	uploadResult, err := cld.Upload.Upload(ctx, file, uploadParams)
	if err != nil {
		writeError(c, err, "Failed to upload image")
		return
	}

	if err := eventService.SetImage(ctx, id, uploadResult.SecureURL); err != nil {
		writeError(c, err, "Failed to save image URL")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image uploaded",
		"imageUrl": uploadResult.SecureURL,
	})
}

func AdminListSignups(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	signups, err := eventService.ListSignups(ctx, id)
	if err != nil {
		writeError(c, err, "Failed to fetch signups")
		return
	}
	if signups == nil {
		signups = []models.EventSignup{}
	}
	c.JSON(http.StatusOK, signups)
}

type PatchSignupRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

// AdminPatchSignup flips the manually tracked payment flag. The signup must
// belong to the event in the URL.
func AdminPatchSignup(c *gin.Context) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return
	}
	signupID, ok := parseID(c, "signupId")
	if !ok {
		return
	}

	var req PatchSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	if err := eventService.SetPaid(ctx, eventID, signupID, *req.Paid); err != nil {
		writeError(c, err, "Failed to update signup")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signup updated"})
}
