package handlers

import (
	"net/http"

	"rehabus/internal/domain/models"
	"rehabus/internal/repositories"

	"github.com/gin-gonic/gin"
)

// Fleet CRUD. The reservation engine reads this table through the same
// repository; writes stay with fleet management.

// GET /api/buses
func GetBuses(c *gin.Context) {
	list, err := (repositories.BusRepository{}).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/buses/:id
func GetBusByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	bus, err := (repositories.BusRepository{}).FindByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

// POST /api/buses
func CreateBus(c *gin.Context) {
	var p models.BusPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	id, err := (repositories.BusRepository{}).Insert(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/buses/:id
func UpdateBus(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var p models.BusPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	if err := (repositories.BusRepository{}).Update(id, p); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": id})
}

// DELETE /api/buses/:id
func DeleteBus(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := (repositories.BusRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
