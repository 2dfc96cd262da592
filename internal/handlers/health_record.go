package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/digital-companion/companion/db"
	"github.com/digital-companion/companion/internal/models"
	"github.com/digital-companion/companion/internal/store"
	"github.com/gin-gonic/gin"
)

// Vitals are bound through pointers so that an explicit 0 counts as provided
// and only absent fields fail validation.
type CreateHealthRecordRequest struct {
	HeartRate     *int `json:"heartRate"`
	BloodPressure *int `json:"bloodPressure"`
}

type UpdateHealthRecordRequest struct {
	HeartRate     *int `json:"heartRate"`
	BloodPressure *int `json:"bloodPressure"`
}

func healthRecordStore() *store.Owned[models.HealthRecord] {
	return store.NewOwned[models.HealthRecord](db.DB, "timestamp ASC")
}

func ListHealthRecords(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	records, err := healthRecordStore().List(userID)

	if err != nil {
		log.Printf("Failed to list health records: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, records)
}

func CreateHealthRecord(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	var req CreateHealthRecordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	if req.HeartRate == nil || req.BloodPressure == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Heart rate and blood pressure are required"})
		return
	}

	record := models.HealthRecord{
		UserID:        userID,
		HeartRate:     *req.HeartRate,
		BloodPressure: *req.BloodPressure,
		Timestamp:     time.Now(),
	}

	if err := healthRecordStore().Create(&record); err != nil {
		log.Printf("Failed to create health record: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusCreated, record)
}

func UpdateHealthRecord(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	id, err := resourceID(ctx)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Record not found"})
		return
	}

	var req UpdateHealthRecordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	records := healthRecordStore()

	record, err := records.Find(userID, id)

	if err != nil {
		respondStoreError(ctx, err, "Record not found")
		return
	}

	if req.HeartRate != nil {
		record.HeartRate = *req.HeartRate
	}
	if req.BloodPressure != nil {
		record.BloodPressure = *req.BloodPressure
	}

	if err := records.Save(record); err != nil {
		log.Printf("Failed to update health record: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusOK, record)
}

func DeleteHealthRecord(ctx *gin.Context) {
	userID, err := currentOwner(ctx)
	if err != nil {
		return
	}

	id, err := resourceID(ctx)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Record not found"})
		return
	}

	if err := healthRecordStore().Delete(userID, id); err != nil {
		respondStoreError(ctx, err, "Record not found")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
