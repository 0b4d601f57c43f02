// Package claim 描述领奖按钮背后的交易能力
//
// 只定义提交接口与一个模拟实现，不涉及钱包或链上逻辑。
package claim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Status 提交状态
type Status int

const (
	// StatusIdle 尚未提交
	StatusIdle Status = iota
	// StatusPending 已提交，等待确认
	StatusPending
	// StatusSuccess 确认成功
	StatusSuccess
	// StatusFailure 失败或被取消
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	}
	return "unknown"
}

// Update 一次状态通知
type Update struct {
	RoundID string
	Status  Status
	Err     error
}

// Submitter 提交领奖交易
//
// Submit 立即返回一个通道，依次收到 Pending 与最终状态后关闭。
// ctx 取消时以 Failure 结束。
type Submitter interface {
	Submit(ctx context.Context, roundID string) <-chan Update
}

// ErrRejected 模拟的交易被拒绝
var ErrRejected = errors.New("transaction rejected")

// SimulatedSubmitter 延迟后给出固定结果的模拟实现
type SimulatedSubmitter struct {
	Delay time.Duration
	// Fail 为 true 时以 ErrRejected 结束
	Fail bool
}

// Submit 实现 Submitter
func (s *SimulatedSubmitter) Submit(ctx context.Context, roundID string) <-chan Update {
	updates := make(chan Update, 2)
	updates <- Update{RoundID: roundID, Status: StatusPending}
	log.Printf("[Claim] round %s submitted", roundID)

	go func() {
		defer close(updates)

		timer := time.NewTimer(s.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			updates <- Update{RoundID: roundID, Status: StatusFailure, Err: fmt.Errorf("claim %s cancelled: %w", roundID, ctx.Err())}
			return
		case <-timer.C:
		}

		if s.Fail {
			log.Printf("[Claim] round %s rejected", roundID)
			updates <- Update{RoundID: roundID, Status: StatusFailure, Err: fmt.Errorf("claim %s: %w", roundID, ErrRejected)}
			return
		}
		log.Printf("[Claim] round %s confirmed", roundID)
		updates <- Update{RoundID: roundID, Status: StatusSuccess}
	}()

	return updates
}

// Tracker 在帧循环中轮询最近一次提交的状态
type Tracker struct {
	submitter Submitter
	updates   <-chan Update
	cancel    context.CancelFunc
	last      Update
}

// NewTracker 创建状态跟踪器
func NewTracker(submitter Submitter) *Tracker {
	return &Tracker{submitter: submitter}
}

// Start 发起新的提交；上一次提交仍在进行时忽略
func (t *Tracker) Start(roundID string) bool {
	if t.last.Status == StatusPending {
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.updates = t.submitter.Submit(ctx, roundID)
	t.Poll()
	return true
}

// Poll 非阻塞地读取所有已到达的状态，返回最新状态
func (t *Tracker) Poll() Update {
	for t.updates != nil {
		select {
		case u, ok := <-t.updates:
			if !ok {
				t.updates = nil
				t.cancel()
				return t.last
			}
			t.last = u
		default:
			return t.last
		}
	}
	return t.last
}

// Cancel 取消进行中的提交
func (t *Tracker) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}
