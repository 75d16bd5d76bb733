// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess   = "success"
	resultFailure   = "failure"
	resultAbandoned = "abandoned"
)

var (
	tickCycles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "guacd",
		Name:      "tick_cycles_total",
		Help:      "Reconciliation passes started.",
	})
	tickCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "guacd",
		Name:      "ticks_total",
		Help:      "Per counterparty reconciliations by result.",
	}, []string{"result"})
	ticksPending = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "guacd",
		Name:      "ticks_pending",
		Help:      "Reconciliations started and not yet finished.",
	})
	paymentCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "guacd",
		Name:      "payments_total",
		Help:      "Payments by result.",
	}, []string{"result"})
	withdrawCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "guacd",
		Name:      "withdrawals_total",
		Help:      "Withdrawals that moved a non-zero amount.",
	})
)
