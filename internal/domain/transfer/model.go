package transfer

import (
	"fmt"
	"strings"
	"time"
)

// Kind separates direct purchases from player exchanges.
type Kind string

const (
	KindPurchase Kind = "purchase"
	KindExchange Kind = "exchange"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Decision is the receiving club's answer to a pending transfer.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

func ParseDecision(raw string) (Decision, error) {
	switch Decision(strings.ToLower(strings.TrimSpace(raw))) {
	case DecisionAccept:
		return DecisionAccept, nil
	case DecisionReject:
		return DecisionReject, nil
	default:
		return "", fmt.Errorf("invalid decision %q", raw)
	}
}

// StateCode is the numeric decision understood by the stored functions.
func (d Decision) StateCode() int {
	if d == DecisionAccept {
		return 1
	}
	return 2
}

// Transfer is a club-to-club request waiting for, or resolved by, the
// receiving club.
type Transfer struct {
	ID                      int64
	Kind                    Kind
	Status                  Status
	RequestingClubID        int64
	ReceivingClubID         int64
	PlayerID                int64
	Amount                  int64
	OfferedPlayerIDs        []int64
	RequestedPlayerIDs      []int64
	CompensationDirectionID int64
	CompensationAmount      int64
	CreatedAt               time.Time
	ResolvedAt              *time.Time
}

func (t Transfer) IsPending() bool {
	return t.Status == StatusPending
}

// PlayerIDs returns every player involved in the transfer.
func (t Transfer) PlayerIDs() []int64 {
	out := make([]int64, 0, 1+len(t.OfferedPlayerIDs)+len(t.RequestedPlayerIDs))
	if t.PlayerID > 0 {
		out = append(out, t.PlayerID)
	}
	out = append(out, t.OfferedPlayerIDs...)
	out = append(out, t.RequestedPlayerIDs...)
	return out
}

// Result is the {code, message} row every remote mutation returns.
// Code 0 means the mutation was applied.
type Result struct {
	Code    int
	Message string
}

func (r Result) OK() bool {
	return r.Code == 0
}

// Result codes shared by the stored functions and the in-memory gateway.
const (
	CodeOK                 = 0
	CodeInsufficientBudget = 1
	CodeNotFound           = 2
	CodeNotOwner           = 3
	CodeNotPending         = 4
	CodeInvalidRequest     = 5
)

func Succeeded(message string) Result {
	return Result{Code: CodeOK, Message: message}
}

func Failed(code int, message string) Result {
	return Result{Code: code, Message: message}
}
