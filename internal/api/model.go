package api

type auditRequest struct {
	Password string `json:"password" binding:"required"`
}

type breachInfo struct {
	// breached, clean or failed. A failed lookup is reported as such, it is
	// never presented as clean.
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
}

type auditResponse struct {
	Rating      string     `json:"rating"`
	Score       int        `json:"score"`
	EntropyBits float64    `json:"entropyBits"`
	CrackTime   string     `json:"crackTime"`
	Suggestions []string   `json:"suggestions,omitempty"`
	Breach      breachInfo `json:"breach"`
}

type hashRequest struct {
	Hash string `json:"hash" binding:"required"`
}

type hashResponse struct {
	Breach breachInfo `json:"breach"`
}
