package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// NoticeError attaches err to the request's New Relic transaction. No-op
// when the agent is disabled.
func NoticeError(c *gin.Context, err error) {
	txn := nrgin.Transaction(c)
	if txn == nil {
		return
	}
	txn.NoticeError(err)
}
