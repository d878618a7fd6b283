package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kv-base-hack/trending-api/common"
	"github.com/kv-base-hack/trending-api/util"
)

type TrendingRowResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	ImageUrl      string  `json:"image_url"`
	MarketCapRank int     `json:"market_cap_rank,omitempty"`
	TrendingScore int     `json:"trending_score"`
	PriceBtc      float64 `json:"price_btc"`
	Price         string  `json:"price"`
	Change24h     string  `json:"change_24h"`
	Increase      bool    `json:"increase"`
}

func (s *Server) getTokenTrending(c *gin.Context) {
	log := s.log.With("ID", util.RandomString(29))
	now := time.Now()
	defer func() {
		log.Debugw("Execution time", "getTokenTrending", time.Since(now))
	}()

	view := s.storage.GetView()
	if view.Err != nil {
		log.Errorw("trending cycle failed", "err", view.Err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrTrendingUnavailable.Error()})
		return
	}

	rows := make([]TrendingRowResponse, 0, len(view.Snapshot.Assets))
	for _, asset := range view.Snapshot.Assets {
		metrics := view.Snapshot.Metrics[asset.ID]
		change, increase := util.FormatChange(metrics.PercentChange24h)
		rows = append(rows, TrendingRowResponse{
			ID:            asset.ID,
			Name:          asset.Name,
			Symbol:        asset.Symbol,
			ImageUrl:      asset.IconUrl,
			MarketCapRank: asset.MarketCapRank,
			TrendingScore: asset.TrendingScore,
			PriceBtc:      asset.PriceBtc,
			Price:         util.FormatAmount(metrics.CurrentPrice),
			Change24h:     change,
			Increase:      increase,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"trending":   rows,
		"loading":    view.Loading,
		"updated_at": view.Snapshot.UpdatedAt,
	})
}

type SelectTokenRequest struct {
	ID string `form:"id" binding:"required"`
}

type SelectionResponse struct {
	Status  string             `json:"status"`
	AssetID string             `json:"asset_id,omitempty"`
	Prices  common.PriceSeries `json:"prices,omitempty"`
}

func newSelectionResponse(state common.SelectionState) SelectionResponse {
	return SelectionResponse{
		Status:  state.Status.String(),
		AssetID: state.AssetID,
		Prices:  state.Prices,
	}
}

func (s *Server) selectToken(c *gin.Context) {
	log := s.log.With("ID", util.RandomString(29))

	var request SelectTokenRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		log.Errorw("invalid request when select token", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrInvalidSelectToken.Error()})
		return
	}

	s.selection.Select(request.ID)

	c.JSON(http.StatusAccepted, gin.H{
		"selection": newSelectionResponse(s.selection.State()),
	})
}

func (s *Server) getSelection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"selection": newSelectionResponse(s.selection.State()),
	})
}

func (s *Server) clearSelection(c *gin.Context) {
	s.selection.Clear()

	c.JSON(http.StatusOK, gin.H{
		"selection": newSelectionResponse(s.selection.State()),
	})
}
