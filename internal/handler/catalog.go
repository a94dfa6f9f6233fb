package handler

import (
	"encoding/json"
	"net/http"

	"github.com/josh-kwaku/securebank/internal/investment"
)

type rateDTO struct {
	Tenure int         `json:"tenure"`
	Rate   json.Number `json:"rate"`
}

type catalogDTO struct {
	Funds         []string    `json:"funds"`
	SIPDurations  []int       `json:"sip_durations"`
	MinSIPMonthly json.Number `json:"min_sip_monthly"`
	MinFDAmount   json.Number `json:"min_fd_amount"`
	MinRDMonthly  json.Number `json:"min_rd_monthly"`
	FDRates       []rateDTO   `json:"fd_rates"`
	RDRates       []rateDTO   `json:"rd_rates"`
	DefaultFDRate json.Number `json:"default_fd_rate"`
	DefaultRDRate json.Number `json:"default_rd_rate"`
}

func toRateDTOs(slabs []investment.RateSlab) []rateDTO {
	out := make([]rateDTO, 0, len(slabs))
	for _, s := range slabs {
		out = append(out, rateDTO{Tenure: s.Tenure, Rate: json.Number(s.Rate.String())})
	}
	return out
}

// Catalog lists the investment products on offer.
func Catalog(w http.ResponseWriter, r *http.Request) {
	RespondSuccess(w, http.StatusOK, catalogDTO{
		Funds:         investment.Funds,
		SIPDurations:  investment.SIPDurations,
		MinSIPMonthly: json.Number(investment.MinSIPMonthly.String()),
		MinFDAmount:   json.Number(investment.MinFDAmount.String()),
		MinRDMonthly:  json.Number(investment.MinRDMonthly.String()),
		FDRates:       toRateDTOs(investment.FDRates),
		RDRates:       toRateDTOs(investment.RDRates),
		DefaultFDRate: json.Number(investment.DefaultFDRate.String()),
		DefaultRDRate: json.Number(investment.DefaultRDRate.String()),
	})
}
