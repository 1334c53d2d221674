package calculations

import "time"

// ScheduleEntry представляет одну запись в графике платежей
type ScheduleEntry struct {
	Period              int       `json:"period"`
	DueDate             time.Time `json:"dueDate"`
	Payment             float64   `json:"payment"`
	Interest            float64   `json:"interest"`
	PrincipalComponent  float64   `json:"principalComponent"`
	RemainingPrincipal  float64   `json:"remainingPrincipal"`
	CumulativeInterest  float64   `json:"cumulativeInterest"`
	CumulativePrincipal float64   `json:"cumulativePrincipal"`
}

// LoanSummary представляет сводку по графику кредита
type LoanSummary struct {
	RemainingBalance float64 `json:"remainingBalance"`
	InterestRate     float64 `json:"interestRate"`
	Periods          int     `json:"periods"`
	PaymentAmount    float64 `json:"paymentAmount"`
	TotalPaid        float64 `json:"totalPaid"`
	TotalInterest    float64 `json:"totalInterest"`
}

// ScheduleResult представляет прогнозный график погашения
type ScheduleResult struct {
	Summary  LoanSummary     `json:"summary"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// PaymentAllocation - разбиение платежа на проценты и основной долг
type PaymentAllocation struct {
	MonthlyInterest  float64
	PrincipalPortion float64
	InterestPortion  float64
}
