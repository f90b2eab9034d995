package trail

// PredictedStatus is the feed's model-predicted condition for a trail
// system, carried through verbatim.
type PredictedStatus struct {
	Status            Status `json:"status"`
	Confidence        string `json:"confidence"`
	UpdatedAt         string `json:"updated_at"`
	StatusDescription string `json:"status_description"`
}

// System is one trail system in the conditions feed. RideStats is local
// enrichment and never present in the feed itself.
type System struct {
	ID                 int64            `json:"id"`
	Status             Status           `json:"status"`
	Name               string           `json:"name"`
	City               string           `json:"city"`
	State              string           `json:"state"`
	FacebookURL        *string          `json:"facebook_url"`
	Lat                float64          `json:"lat"`
	Lng                float64          `json:"lng"`
	TotalDistance      float64          `json:"total_distance"`
	Description        *string          `json:"description"`
	PDFMapURL          *string          `json:"pdf_map_url"`
	VideoURL           *string          `json:"video_url"`
	ExternalURL        *string          `json:"external_url"`
	StatusDescription  string           `json:"status_description"`
	DirectionsURL      *string          `json:"directions_url"`
	LatestStatusUpdate *string          `json:"latest_status_update_at"`
	PredictedStatus    *PredictedStatus `json:"predicted_status"`
	RideStats          *StatsDisplay    `json:"stats,omitempty"`
}
