package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"autogram-api/models"
	"autogram-api/utils"
)

type CarController struct {
	db *gorm.DB
}

func NewCarController(db *gorm.DB) *CarController {
	return &CarController{db: db}
}

type CreateCarRequest struct {
	Make        string   `json:"make" binding:"required"`
	Model       string   `json:"model" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	Price       float64  `json:"price" binding:"required"`
	Latitude    float64  `json:"lat"`
	Longitude   float64  `json:"lng"`
	Description string   `json:"description"`
	ImageIDs    []string `json:"image_ids"`
	Category    string   `json:"category" binding:"required"`
	Features    []string `json:"features"`
}

func (cc *CarController) CreateCar(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidLatitude(req.Latitude) || !utils.IsValidLongitude(req.Longitude) {
		utils.SendValidationError(c, "Invalid coordinates")
		return
	}
	if !utils.IsValidYear(req.Year) {
		utils.SendValidationError(c, "Invalid year")
		return
	}

	car := models.Car{
		ID:          uuid.New().String(),
		OwnerID:     userID,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Description: req.Description,
		ImageIDs:    models.StringSlice(req.ImageIDs),
		Category:    req.Category,
		Features:    models.StringSlice(req.Features),
		Available:   true,
	}

	if err := cc.db.Create(&car).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create car")
		return
	}

	c.JSON(http.StatusCreated, car)
}

// ListCars returns the available cars, narrowed by optional filters applied
// as successive in-memory passes: straight-line distance on raw lat/lng (not
// geodesic), exact category match, and an inclusive price range.
func (cc *CarController) ListCars(c *gin.Context) {
	var cars []models.Car
	if err := cc.db.Where("available = ?", true).Find(&cars).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch cars")
		return
	}

	latStr, lngStr, radiusStr := c.Query("lat"), c.Query("lng"), c.Query("radius")
	if latStr != "" || lngStr != "" || radiusStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		radius, errRadius := strconv.ParseFloat(radiusStr, 64)
		if errLat != nil || errLng != nil || errRadius != nil {
			utils.SendValidationError(c, "Location filter requires numeric lat, lng and radius")
			return
		}

		filtered := make([]models.Car, 0, len(cars))
		for _, car := range cars {
			distance := math.Sqrt(
				math.Pow(car.Latitude-lat, 2) + math.Pow(car.Longitude-lng, 2))
			if distance <= radius {
				filtered = append(filtered, car)
			}
		}
		cars = filtered
	}

	if category := c.Query("category"); category != "" {
		filtered := make([]models.Car, 0, len(cars))
		for _, car := range cars {
			if car.Category == category {
				filtered = append(filtered, car)
			}
		}
		cars = filtered
	}

	minStr, maxStr := c.Query("min_price"), c.Query("max_price")
	if minStr != "" || maxStr != "" {
		minPrice, errMin := strconv.ParseFloat(minStr, 64)
		maxPrice, errMax := strconv.ParseFloat(maxStr, 64)
		if errMin != nil || errMax != nil {
			utils.SendValidationError(c, "Price filter requires numeric min_price and max_price")
			return
		}

		filtered := make([]models.Car, 0, len(cars))
		for _, car := range cars {
			if car.Price >= minPrice && car.Price <= maxPrice {
				filtered = append(filtered, car)
			}
		}
		cars = filtered
	}

	c.JSON(http.StatusOK, cars)
}
