package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"silent-auction/internal/auctionerrors"
	model "silent-auction/internal/models"
	"silent-auction/services/auction/helpers"
)

// newTestRouter wires the handler under test behind a stub identity
// middleware that always authenticates the given caller.
func newTestRouter(h *AuctionHandler, caller string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(helpers.CallerContextKey, caller)
		c.Next()
	})

	router.POST("/auctions", h.CreateAuctionHandler)
	router.GET("/auctions", h.ListAuctionsHandler)
	router.GET("/auctions/:auction_id", h.GetAuctionHandler)
	router.POST("/auctions/:auction_id/bids", h.PlaceBidHandler)
	router.POST("/auctions/:auction_id/close", h.CloseAuctionHandler)
	router.POST("/auctions/:auction_id/members", h.AddMemberHandler)
	router.POST("/admins", h.CreateAdminHandler)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// Test CreateAuctionHandler
func TestCreateAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := newTestRouter(NewAuctionHandler(mockService), "seller")

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_open_auction",
			requestBody: helpers.CreateAuctionRequest{Description: "Chair", InitialPrice: 10},
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction("seller", "Chair", int64(10), false).
					Return(model.Auction{
						AuctionID:    "auction-1",
						Description:  "Chair",
						InitialPrice: 10,
						Creator:      "seller",
						ChannelID:    model.OpenChannelID,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "auction-1", data["auction_id"])
				require.Equal(t, false, data["silent"])
				require.Equal(t, false, data["closed"])
			},
		},
		{
			name:        "silent_denied_for_non_admin",
			requestBody: helpers.CreateAuctionRequest{Description: "Painting", InitialPrice: 100, Silent: true},
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction("seller", "Painting", int64(100), true).
					Return(model.Auction{}, fmt.Errorf("service: %w", auctionerrors.ErrPermissionDenied))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing_description",
			requestBody:    map[string]any{"initial_price": 10},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid_json",
			requestBody:    "{description: 'missing quotes'}",
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			resp, w := doJSON(t, router, http.MethodPost, "/auctions", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)

			if tc.validateData != nil {
				data, ok := resp["data"].(map[string]any)
				require.True(t, ok, "response has no data object: %v", resp)
				tc.validateData(t, data)
			}
		})
	}
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := newTestRouter(NewAuctionHandler(mockService), "bob")

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "success",
			requestBody: helpers.PlaceBidRequest{Amount: 15},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("bob", "auction-1", int64(15)).
					Return(model.Bid{Bidder: "bob", Amount: 15}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "bid_too_low",
			requestBody: helpers.PlaceBidRequest{Amount: 5},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("bob", "auction-1", int64(5)).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrBidTooLow))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "auction_closed",
			requestBody: helpers.PlaceBidRequest{Amount: 20},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("bob", "auction-1", int64(20)).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrAuctionClosed))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "invisible_auction_maps_to_not_found",
			requestBody: helpers.PlaceBidRequest{Amount: 20},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("bob", "auction-1", int64(20)).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrNoAccess))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "zero_amount_rejected_by_binding",
			requestBody:    map[string]any{"amount": 0},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			_, w := doJSON(t, router, http.MethodPost, "/auctions/auction-1/bids", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

// Test GetAuctionHandler and ListAuctionsHandler
func TestReadHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := newTestRouter(NewAuctionHandler(mockService), "alice")

	t.Run("get_visible_auction", func(t *testing.T) {
		mockService.EXPECT().
			GetAuction("alice", "auction-1").
			Return(model.Auction{
				AuctionID: "auction-1",
				Creator:   "seller",
				LastBid:   &model.Bid{Bidder: "bob", Amount: 15},
				ChannelID: model.OpenChannelID,
			}, nil)

		resp, w := doJSON(t, router, http.MethodGet, "/auctions/auction-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		require.Equal(t, "auction-1", data["auction_id"])
		lastBid := data["last_bid"].(map[string]any)
		require.Equal(t, "bob", lastBid["bidder"])
		require.Equal(t, 15.0, lastBid["amount"])
	})

	t.Run("get_invisible_auction_is_not_found", func(t *testing.T) {
		mockService.EXPECT().
			GetAuction("alice", "auction-2").
			Return(model.Auction{}, fmt.Errorf("service: %w", auctionerrors.ErrNoAccess))

		_, w := doJSON(t, router, http.MethodGet, "/auctions/auction-2", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list_returns_empty_array_not_null", func(t *testing.T) {
		mockService.EXPECT().ListAuctions("alice").Return([]model.Auction{}, nil)

		resp, w := doJSON(t, router, http.MethodGet, "/auctions", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data, ok := resp["data"].([]any)
		require.True(t, ok)
		require.Empty(t, data)
	})

	t.Run("list_failure", func(t *testing.T) {
		mockService.EXPECT().ListAuctions("alice").Return(nil, errors.New("store failure"))

		_, w := doJSON(t, router, http.MethodGet, "/auctions", nil)
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

// Test CloseAuctionHandler
func TestCloseAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := newTestRouter(NewAuctionHandler(mockService), "seller")

	t.Run("close_with_winner", func(t *testing.T) {
		mockService.EXPECT().
			CloseAuction("seller", "auction-1").
			Return(&model.Bid{Bidder: "bob", Amount: 15}, nil)

		resp, w := doJSON(t, router, http.MethodPost, "/auctions/auction-1/close", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		winning := data["winning_bid"].(map[string]any)
		require.Equal(t, "bob", winning["bidder"])
	})

	t.Run("close_without_winner", func(t *testing.T) {
		mockService.EXPECT().CloseAuction("seller", "auction-1").Return(nil, nil)

		resp, w := doJSON(t, router, http.MethodPost, "/auctions/auction-1/close", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		_, present := data["winning_bid"]
		require.False(t, present)
	})

	t.Run("not_the_creator", func(t *testing.T) {
		mockService.EXPECT().
			CloseAuction("seller", "auction-1").
			Return(nil, fmt.Errorf("service: %w", auctionerrors.ErrPermissionDenied))

		_, w := doJSON(t, router, http.MethodPost, "/auctions/auction-1/close", nil)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("already_closed", func(t *testing.T) {
		mockService.EXPECT().
			CloseAuction("seller", "auction-1").
			Return(nil, fmt.Errorf("service: %w", auctionerrors.ErrAuctionClosed))

		_, w := doJSON(t, router, http.MethodPost, "/auctions/auction-1/close", nil)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

// Test CreateAdminHandler and AddMemberHandler
func TestAdminAndMembershipHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	router := newTestRouter(NewAuctionHandler(mockService), "admin")

	t.Run("enroll_admin", func(t *testing.T) {
		mockService.EXPECT().
			CreateAdmin("admin", "alice").
			Return(model.Admin{Identity: "alice", EnrolledBy: "admin"}, nil)

		resp, w := doJSON(t, router, http.MethodPost, "/admins", helpers.CreateAdminRequest{Identity: "alice"})
		require.Equal(t, http.StatusCreated, w.Code)

		data := resp["data"].(map[string]any)
		require.Equal(t, "alice", data["identity"])
		require.Equal(t, "admin", data["enrolled_by"])
	})

	t.Run("duplicate_admin", func(t *testing.T) {
		mockService.EXPECT().
			CreateAdmin("admin", "alice").
			Return(model.Admin{}, fmt.Errorf("service: %w", auctionerrors.ErrAdminExists))

		_, w := doJSON(t, router, http.MethodPost, "/admins", helpers.CreateAdminRequest{Identity: "alice"})
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("add_member", func(t *testing.T) {
		mockService.EXPECT().AddMember("admin", "auction-1", "bob").Return(nil)

		_, w := doJSON(t, router, http.MethodPost, "/auctions/auction-1/members", helpers.AddMemberRequest{Identity: "bob"})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("add_member_dual_gate_failure", func(t *testing.T) {
		mockService.EXPECT().
			AddMember("admin", "auction-1", "bob").
			Return(fmt.Errorf("service: %w", auctionerrors.ErrPermissionDenied))

		_, w := doJSON(t, router, http.MethodPost, "/auctions/auction-1/members", helpers.AddMemberRequest{Identity: "bob"})
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing_member_identity", func(t *testing.T) {
		_, w := doJSON(t, router, http.MethodPost, "/auctions/auction-1/members", map[string]any{})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
