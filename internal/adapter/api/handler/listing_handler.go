package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"
	"campusmarket/pkg/utils"
)

// browseFilters are the query parameters that narrow the browse view.
var browseFilters = []string{"category", "condition", "price", "location", "seller"}

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
	browseUseCase  *usecase.BrowseUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase, browseUseCase *usecase.BrowseUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		browseUseCase:  browseUseCase,
	}
}

type createListingRequest struct {
	Name           string `json:"name" validate:"required,notblank,max=120"`
	Category       string `json:"category" validate:"required,notblank"`
	Condition      string `json:"condition" validate:"omitempty,oneof=new like-new good fair"`
	Price          string `json:"price" validate:"required,notblank,price"`
	OriginalPrice  string `json:"original_price" validate:"omitempty,price"`
	Description    string `json:"description" validate:"required,notblank,max=2000"`
	MeetupLocation string `json:"meetup_location" validate:"required,notblank"`
	ImageSrc       string `json:"image_src" validate:"omitempty,url"`
	ImageAlt       string `json:"image_alt"`
}

// Browse serves the filtered, sorted and paginated listing view.
// Filter values may repeat or be comma separated.
func (h *ListingHandler) Browse(c echo.Context) error {
	query := usecase.BrowseQuery{
		Query:   c.QueryParam("q"),
		Sort:    c.QueryParam("sort"),
		Filters: make(map[string][]string),
	}

	params := c.QueryParams()
	for _, name := range browseFilters {
		for _, raw := range params[name] {
			for _, v := range strings.Split(raw, ",") {
				if v = strings.TrimSpace(v); v != "" {
					query.Filters[name] = append(query.Filters[name], v)
				}
			}
		}
	}

	pagination := utils.GetPaginationParams(c)
	listings, total, err := h.browseUseCase.Browse(c.Request().Context(), query, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), uid, usecase.CreateListingInput{
		ListingFields: entity.ListingFields{
			Name:           req.Name,
			Category:       req.Category,
			Condition:      req.Condition,
			Price:          req.Price,
			OriginalPrice:  req.OriginalPrice,
			Description:    req.Description,
			MeetupLocation: req.MeetupLocation,
			ImageSrc:       req.ImageSrc,
			ImageAlt:       req.ImageAlt,
		},
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.NoContent(c)
}
