package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/digital-companion/companion/db"
	"github.com/digital-companion/companion/internal/models"
	"github.com/digital-companion/companion/internal/services"
	"github.com/digital-companion/companion/internal/store"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type AssistantMessageRequest struct {
	Text string `json:"text"`
}

func assistantStore() *store.Owned[models.AssistantExchange] {
	return store.NewOwned[models.AssistantExchange](db.DB, "created_at ASC")
}

// AssistantMessage proxies a text prompt to the assistant service and records
// the exchange for the caller. Service failures are the collaborator's fault,
// not ours, so they map to 502.
func AssistantMessage(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	var req AssistantMessageRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Text is required"})
		return
	}

	reply, raw, err := services.ProcessText(req.Text)

	if err != nil {
		log.Printf("Assistant service error: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"message": "Assistant service unavailable"})
		return
	}

	exchange := models.AssistantExchange{
		UserID: userID,
		Prompt: req.Text,
		Reply:  reply,
		Raw:    datatypes.JSON(raw),
	}

	if err := assistantStore().Create(&exchange); err != nil {
		log.Printf("Failed to record assistant exchange: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reply": reply})
}

// AssistantSpeech streams the multipart audio body through to the assistant
// service and relays its transcription JSON verbatim. Nothing is persisted.
func AssistantSpeech(ctx *gin.Context) {
	if _, err := currentOwner(ctx); err != nil {
		return
	}

	payload, err := services.Transcribe(ctx.Request.Body, ctx.GetHeader("Content-Type"))

	if err != nil {
		log.Printf("Speech service error: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"message": "Speech service unavailable"})
		return
	}

	ctx.Data(http.StatusOK, "application/json", payload)
}

func ListAssistantHistory(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	exchanges, err := assistantStore().List(userID)

	if err != nil {
		log.Printf("Failed to list assistant history: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, exchanges)
}

func DeleteAssistantExchange(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	id, err := resourceID(ctx)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Exchange not found"})
		return
	}

	if err := assistantStore().Delete(userID, id); err != nil {
		respondStoreError(ctx, err, "Exchange not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
