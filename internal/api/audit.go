// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"pwd-audit/internal/audit"
	"pwd-audit/pkg/hibp"
	"regexp"
	"strings"
)

type auditApi struct {
	auditor *audit.Auditor
	checker *hibp.Client
}

func (a *auditApi) checkPassword(c *gin.Context) {
	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password cannot be empty"})
		return
	}

	report := a.auditor.Run(c.Request.Context(), req.Password)
	c.JSON(http.StatusOK, auditResponse{
		Rating:      report.Rating.String(),
		Score:       report.Strength.Score,
		EntropyBits: report.EntropyBits,
		CrackTime:   report.Strength.CrackTimeDisplay,
		Suggestions: report.Strength.Suggestions,
		Breach:      toBreachInfo(report.Breach),
	})
}

func (a *auditApi) checkHash(c *gin.Context) {
	var req hashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if match, _ := regexp.MatchString("^[a-fA-F\\d]{40}$", req.Hash); !match {
		c.JSON(http.StatusBadRequest, gin.H{"error": "input is not a valid SHA1 Hexadecimal hash"})
		return
	}

	result := a.checker.CheckHash(c.Request.Context(), strings.ToUpper(req.Hash))
	c.JSON(http.StatusOK, hashResponse{Breach: toBreachInfo(result)})
}

func toBreachInfo(result hibp.Result) breachInfo {
	switch result.Status {
	case hibp.StatusBreached:
		return breachInfo{Status: "breached", Count: result.Count}
	case hibp.StatusFailed:
		return breachInfo{Status: "failed"}
	default:
		return breachInfo{Status: "clean"}
	}
}

func RegisterAuditApi(group *gin.RouterGroup, hibpURL string) {
	checker := hibp.NewClientWithBaseURL(hibpURL)
	a := &auditApi{
		auditor: audit.NewAuditor(checker, audit.ZxcvbnEstimator{}),
		checker: checker,
	}

	group.POST("/password", a.checkPassword)
	group.POST("/hash", a.checkHash)
}
