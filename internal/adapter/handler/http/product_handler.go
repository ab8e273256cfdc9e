package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainerrors "github.com/shop2give/payment-service/internal/domain/errors"
	"github.com/shop2give/payment-service/internal/middleware/auth"
	"github.com/shop2give/payment-service/internal/usecase"
)

// Action discriminates product API requests. Dispatch is an exhaustive
// switch; an unknown action is a client error, never a silent fallthrough.
type Action string

const (
	ActionGetAllProducts                   Action = "getAllProducts"
	ActionGetProductsByCampaign            Action = "getProductsByCampaign"
	ActionGetProductByID                   Action = "getProductById"
	ActionGetProductByName                 Action = "getProductByName"
	ActionProductExists                    Action = "productExists"
	ActionGetDonationProductForCampaign    Action = "getDonationProductForCampaign"
	ActionGetProductsByNameAndCampaignID   Action = "getProductsByNameAndCampaignId"
	ActionCreateProduct                    Action = "createProduct"
	ActionCreateDonationProductForCampaign Action = "createDonationProductForCampaign"
	ActionUpdateDonationProductTariffs     Action = "updateDonationProductTariffs"
	ActionAddPriceToProduct                Action = "addPriceToProduct"
	ActionUpdateProduct                    Action = "updateProduct"
	ActionDeleteProduct                    Action = "deleteProduct"
)

// isWrite reports whether the action mutates the catalog
func (a Action) isWrite() bool {
	switch a {
	case ActionCreateProduct,
		ActionCreateDonationProductForCampaign,
		ActionUpdateDonationProductTariffs,
		ActionAddPriceToProduct,
		ActionUpdateProduct,
		ActionDeleteProduct:
		return true
	}
	return false
}

// ProductRequest is the body of a catalog API call
type ProductRequest struct {
	Action      Action               `json:"action" validate:"required"`
	ProductID   string               `json:"productId,omitempty"`
	CampaignID  string               `json:"campaignId,omitempty"`
	Name        string               `json:"name,omitempty"`
	Description string               `json:"description,omitempty"`
	Images      []string             `json:"images,omitempty"`
	Metadata    map[string]string    `json:"metadata,omitempty"`
	Active      *bool                `json:"active,omitempty"`
	Prices      []usecase.PriceInput `json:"prices,omitempty"`
}

// APIResponse is the uniform catalog API envelope
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ProductHandler serves the catalog API
type ProductHandler struct {
	products *usecase.ProductService
	logger   *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *usecase.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		logger:   logger,
	}
}

// Handle dispatches a POST request by its action field
func (h *ProductHandler) Handle(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   "Missing required parameter action",
		})
	}

	return h.dispatch(c, &req)
}

// HandleQuery serves the GET variant, mapping query parameters onto the
// read-only actions. Absent action defaults to listing everything.
func (h *ProductHandler) HandleQuery(c echo.Context) error {
	action := Action(c.QueryParam("action"))
	if action == "" {
		action = ActionGetAllProducts
	}

	req := &ProductRequest{
		Action:     action,
		ProductID:  c.QueryParam("productId"),
		CampaignID: c.QueryParam("campaignId"),
		Name:       c.QueryParam("name"),
	}

	if action.isWrite() {
		return c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("Action %s requires a POST request", action),
		})
	}

	return h.dispatch(c, req)
}

func (h *ProductHandler) dispatch(c echo.Context, req *ProductRequest) error {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, APIResponse{
			Success: false,
			Error:   "Unauthorized",
		})
	}

	if req.Action.isWrite() && !user.IsElevated() {
		return c.JSON(http.StatusForbidden, APIResponse{
			Success: false,
			Error:   domainerrors.ErrInsufficientPermissions.Error(),
		})
	}

	ctx := c.Request().Context()

	var (
		data    interface{}
		callErr error
	)

	switch req.Action {
	case ActionGetAllProducts:
		data, callErr = h.products.GetAllProducts(ctx)

	case ActionGetProductsByCampaign:
		if callErr = requireParam(req.CampaignID, "campaignId"); callErr == nil {
			data, callErr = h.products.GetProductsByCampaign(ctx, req.CampaignID)
		}

	case ActionGetProductByID:
		if callErr = requireParam(req.ProductID, "productId"); callErr == nil {
			data, callErr = h.products.GetProductByID(ctx, req.ProductID)
		}

	case ActionGetProductByName:
		if callErr = requireParam(req.Name, "name"); callErr == nil {
			data, callErr = h.products.GetProductByName(ctx, req.Name)
		}

	case ActionProductExists:
		if callErr = requireParams(map[string]string{"name": req.Name, "campaignId": req.CampaignID}); callErr == nil {
			var exists bool
			exists, callErr = h.products.ProductExists(ctx, req.Name, req.CampaignID)
			data = echo.Map{"exists": exists}
		}

	case ActionGetDonationProductForCampaign:
		if callErr = requireParam(req.CampaignID, "campaignId"); callErr == nil {
			data, callErr = h.products.GetDonationProductForCampaign(ctx, req.CampaignID)
		}

	case ActionGetProductsByNameAndCampaignID:
		if callErr = requireParams(map[string]string{"name": req.Name, "campaignId": req.CampaignID}); callErr == nil {
			data, callErr = h.products.GetProductsByNameAndCampaignID(ctx, req.Name, req.CampaignID)
		}

	case ActionCreateProduct:
		if callErr = requireParams(map[string]string{"name": req.Name, "campaignId": req.CampaignID}); callErr == nil {
			data, callErr = h.products.CreateProduct(ctx, &usecase.CreateProductInput{
				Name:        req.Name,
				Description: req.Description,
				CampaignID:  req.CampaignID,
				Images:      req.Images,
				Metadata:    req.Metadata,
				Active:      req.Active,
				Prices:      req.Prices,
			})
		}

	case ActionCreateDonationProductForCampaign:
		if callErr = requireParam(req.CampaignID, "campaignId"); callErr == nil {
			data, callErr = h.products.CreateDonationProductForCampaign(ctx, &usecase.CreateProductInput{
				CampaignID: req.CampaignID,
				Images:     req.Images,
				Metadata:   req.Metadata,
				Active:     req.Active,
				Prices:     req.Prices,
			})
		}

	case ActionUpdateDonationProductTariffs:
		if callErr = requireParam(req.ProductID, "productId"); callErr == nil {
			data, callErr = h.products.UpdateDonationProductTariffs(ctx, req.ProductID, req.Prices)
		}

	case ActionAddPriceToProduct:
		callErr = requireParam(req.ProductID, "productId")
		if callErr == nil && len(req.Prices) == 0 {
			callErr = domainerrors.NewValidationError("Missing required parameter prices")
		}
		if callErr == nil {
			data, callErr = h.products.AddPriceToProduct(ctx, req.ProductID, req.Prices[0])
		}

	case ActionUpdateProduct:
		if callErr = requireParam(req.ProductID, "productId"); callErr == nil {
			in := &usecase.UpdateProductInput{
				ProductID: req.ProductID,
				Images:    req.Images,
				Metadata:  req.Metadata,
				Active:    req.Active,
			}
			if req.Name != "" {
				in.Name = &req.Name
			}
			if req.Description != "" {
				in.Description = &req.Description
			}
			data, callErr = h.products.UpdateProduct(ctx, in)
		}

	case ActionDeleteProduct:
		if callErr = requireParam(req.ProductID, "productId"); callErr == nil {
			callErr = h.products.DeleteProduct(ctx, req.ProductID)
			data = echo.Map{"deleted": true}
		}

	default:
		return c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error:   fmt.Sprintf("Unknown action: %s", req.Action),
		})
	}

	if callErr != nil {
		return h.respondError(c, req.Action, callErr)
	}

	return c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// respondError maps the error taxonomy onto status codes
func (h *ProductHandler) respondError(c echo.Context, action Action, err error) error {
	status := http.StatusInternalServerError

	var providerErr *domainerrors.ProviderError
	switch {
	case domainerrors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, domainerrors.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.As(err, &providerErr):
		status = http.StatusInternalServerError
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Product action failed",
			zap.String("action", string(action)),
			zap.Error(err))
	}

	return c.JSON(status, APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func requireParam(value, name string) error {
	if value == "" {
		return domainerrors.NewValidationError(fmt.Sprintf("Missing required parameter %s", name))
	}
	return nil
}

func requireParams(params map[string]string) error {
	// Deterministic order so the first missing parameter reported is stable
	for _, name := range []string{"name", "campaignId", "productId"} {
		if value, ok := params[name]; ok && value == "" {
			return domainerrors.NewValidationError(fmt.Sprintf("Missing required parameter %s", name))
		}
	}
	return nil
}
