package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/digital-companion/companion/db"
	"github.com/digital-companion/companion/internal/models"
	"github.com/digital-companion/companion/internal/store"
	"github.com/digital-companion/companion/internal/utils"
	"github.com/gin-gonic/gin"
)

type CreateReminderRequest struct {
	Title string `json:"title"`
	Time  string `json:"time"`
	Type  string `json:"type"`
}

type UpdateReminderRequest struct {
	Title       *string `json:"title"`
	Time        *string `json:"time"`
	Type        *string `json:"type"`
	IsCompleted *bool   `json:"isCompleted"`
}

func reminderStore() *store.Owned[models.Reminder] {
	return store.NewOwned[models.Reminder](db.DB, "created_at DESC")
}

func resourceID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func ListReminders(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	reminders, err := reminderStore().List(userID)

	if err != nil {
		log.Printf("Failed to list reminders: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, reminders)
}

func CreateReminder(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	var req CreateReminderRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return
	}

	reminderType := req.Type
	if reminderType == "" {
		reminderType = models.DefaultReminderType
	}

	reminder := models.Reminder{
		UserID: userID,
		Title:  req.Title,
		Time:   req.Time,
		Type:   reminderType,
	}

	if err := reminderStore().Create(&reminder); err != nil {
		log.Printf("Failed to create reminder: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusCreated, reminder)
}

func UpdateReminder(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	id, err := resourceID(ctx)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Reminder not found"})
		return
	}

	var req UpdateReminderRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return
	}

	reminders := reminderStore()

	reminder, err := reminders.Find(userID, id)

	if err != nil {
		respondStoreError(ctx, err, "Reminder not found")
		return
	}

	if req.Title != nil {
		reminder.Title = *req.Title
	}
	if req.Time != nil {
		reminder.Time = *req.Time
	}
	if req.Type != nil {
		reminder.Type = *req.Type
	}
	if req.IsCompleted != nil {
		reminder.IsCompleted = *req.IsCompleted
	}

	if err := reminders.Save(reminder); err != nil {
		log.Printf("Failed to update reminder: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, reminder)
}

func ToggleReminder(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	id, err := resourceID(ctx)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Reminder not found"})
		return
	}

	reminders := reminderStore()

	reminder, err := reminders.Find(userID, id)

	if err != nil {
		respondStoreError(ctx, err, "Reminder not found")
		return
	}

	reminder.IsCompleted = !reminder.IsCompleted

	if err := reminders.Save(reminder); err != nil {
		log.Printf("Failed to toggle reminder: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, reminder)
}

func DeleteReminder(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	id, err := resourceID(ctx)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Reminder not found"})
		return
	}

	if err := reminderStore().Delete(userID, id); err != nil {
		respondStoreError(ctx, err, "Reminder not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// currentOwner resolves the authenticated owner id, answering 401 itself when
// the gate did not run.
func currentOwner(ctx *gin.Context) (uint, error) {
	userID, err := utils.GetCurrentUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return 0, err
	}
	return userID, nil
}

func respondStoreError(ctx *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, store.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
		return
	}
	log.Printf("Store error: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}
