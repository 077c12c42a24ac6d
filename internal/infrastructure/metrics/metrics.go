package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TaskMetrics covers the submission hot path and the funding flows around it.
type TaskMetrics struct {
	SubmissionsTotal       *prometheus.CounterVec
	SubmissionsFailedTotal *prometheus.CounterVec
	SubmissionProfitTotal  prometheus.Counter
	SubmissionDebitTotal   prometheus.Counter
	ReferralBonusesTotal   prometheus.Counter
	SubmissionDuration     prometheus.Histogram

	DepositsApprovedTotal     prometheus.Counter
	DepositsRejectedTotal     prometheus.Counter
	WithdrawalsRequestedTotal prometheus.Counter
}

func NewTaskMetrics() *TaskMetrics {
	return &TaskMetrics{
		SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "task_submissions_total",
			Help: "Completed task submissions, labeled by user level",
		}, []string{"level"}),
		SubmissionsFailedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "task_submissions_failed_total",
			Help: "Rejected task submissions, labeled by reason",
		}, []string{"reason"}),
		SubmissionProfitTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "task_submission_profit_total",
			Help: "Total profit credited to submitters",
		}),
		SubmissionDebitTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "task_submission_debit_total",
			Help: "Total amount debited from submitters",
		}),
		ReferralBonusesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "referral_bonuses_total",
			Help: "Referral bonus records created",
		}),
		SubmissionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "task_submission_duration_seconds",
			Help:    "End-to-end duration of the submission transaction",
			Buckets: prometheus.DefBuckets,
		}),
		DepositsApprovedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deposits_approved_total",
			Help: "Deposits approved by an admin",
		}),
		DepositsRejectedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "deposits_rejected_total",
			Help: "Deposits rejected by an admin",
		}),
		WithdrawalsRequestedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "withdrawals_requested_total",
			Help: "Withdrawal requests created by users",
		}),
	}
}
