package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churchconnect/internal/utils"
)

// AddressHandler serves the cascading Philippine address dropdowns
// (region -> province -> city/municipality -> barangay) from the public
// PSGC dataset.
type AddressHandler struct {
	psgc *utils.PSGCClient
}

func NewAddressHandler(psgc *utils.PSGCClient) *AddressHandler {
	return &AddressHandler{psgc: psgc}
}

func (h *AddressHandler) Regions(c *gin.Context) {
	items, err := h.psgc.Regions()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "address lookup unavailable"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AddressHandler) Provinces(c *gin.Context) {
	code := c.Param("region")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "region code required"})
		return
	}
	items, err := h.psgc.Provinces(code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "address lookup unavailable"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AddressHandler) CitiesMunicipalities(c *gin.Context) {
	code := c.Param("province")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "province code required"})
		return
	}
	items, err := h.psgc.CitiesMunicipalities(code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "address lookup unavailable"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *AddressHandler) Barangays(c *gin.Context) {
	code := c.Param("city")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "city code required"})
		return
	}
	items, err := h.psgc.Barangays(code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "address lookup unavailable"})
		return
	}
	c.JSON(http.StatusOK, items)
}
