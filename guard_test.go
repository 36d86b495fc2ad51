package statebox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KhashayarRahimi/statebox"
)

func TestExprGuard(t *testing.T) {
	guard, err := statebox.ExprGuard[Account](
		`data > 0 && payload.Balance + data <= 1000`,
	)
	assert.NoError(t, err)

	evt := statebox.Event{Type: EventDeposit, Data: 100}
	ok, err := guard(Account{Balance: 500}, evt)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard(Account{Balance: 950}, evt)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = guard(Account{}, statebox.Event{Type: EventDeposit, Data: -5})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestExprGuardSeesEventType(t *testing.T) {
	guard, err := statebox.ExprGuard[Account](`event == "deposit"`)
	assert.NoError(t, err)

	ok, err := guard(Account{}, statebox.Event{Type: EventDeposit})
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard(Account{}, statebox.Event{Type: EventWithdraw})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestExprGuardCompileError(t *testing.T) {
	_, err := statebox.ExprGuard[Account](`data >`)

	var guardErr *statebox.GuardError
	assert.ErrorAs(t, err, &guardErr)
	assert.Equal(t, `data >`, guardErr.Expr)
}

func TestExprGuardInProcess(t *testing.T) {
	b := statebox.NewBuilder[Account](TagOpen)
	b.Tag(TagOpen).
		On(EventWithdraw, TagOpen).Do(withdraw).
		WhenExpr(`data > 0 && data <= payload.Balance`)
	reg, err := b.Build()
	assert.NoError(t, err)

	e, err := statebox.NewEntity(
		reg, Account{Balance: 40}, statebox.Config[Account]{},
	)
	assert.NoError(t, err)

	_, err = e.Process(statebox.Event{Type: EventWithdraw, Data: 30})
	assert.NoError(t, err)

	_, err = e.Process(statebox.Event{Type: EventWithdraw, Data: 30})
	var illegal *statebox.IllegalTransitionError
	assert.ErrorAs(t, err, &illegal)
	assert.Equal(t, statebox.GuardRejected, illegal.Reason)

	acct, err := e.Payload()
	assert.NoError(t, err)
	assert.Equal(t, 10, acct.Balance)
}

func TestBuilderReportsGuardCompileError(t *testing.T) {
	b := statebox.NewBuilder[Account](TagOpen)
	b.Tag(TagOpen).
		On(EventDeposit, TagOpen).WhenExpr(`&&`)

	_, err := b.Build()
	var guardErr *statebox.GuardError
	assert.ErrorAs(t, err, &guardErr)
}
