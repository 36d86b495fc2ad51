package statebox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KhashayarRahimi/statebox"
)

const accountDefinition = `
initial: open
tags:
  open:
    - on: deposit
      to: open
      effect: deposit
      guard: "data > 0"
    - on: withdraw
      to: open
      effect: withdraw
    - on: close
      to: closed
  closed: []
`

func accountEffects() statebox.Effects[Account] {
	return statebox.Effects[Account]{
		"deposit":  deposit,
		"withdraw": withdraw,
	}
}

func TestLoadRegistry(t *testing.T) {
	reg, err := statebox.LoadRegistry(
		[]byte(accountDefinition), accountEffects(),
	)
	assert.NoError(t, err)
	assert.Equal(t, TagOpen, reg.Initial())
	assert.True(t, reg.Terminal(TagClosed))
	assert.Equal(t,
		[]statebox.EventType{EventClose, EventDeposit, EventWithdraw},
		reg.Events(TagOpen),
	)

	e, err := statebox.NewEntity(reg, Account{}, statebox.Config[Account]{})
	assert.NoError(t, err)

	_, err = e.Process(statebox.Event{Type: EventDeposit, Data: 75})
	assert.NoError(t, err)

	_, err = e.Process(statebox.Event{Type: EventDeposit, Data: 0})
	var illegal *statebox.IllegalTransitionError
	assert.ErrorAs(t, err, &illegal)
	assert.Equal(t, statebox.GuardRejected, illegal.Reason)

	acct, err := e.Payload()
	assert.NoError(t, err)
	assert.Equal(t, 75, acct.Balance)
}

func TestParseDefinition(t *testing.T) {
	d, err := statebox.ParseDefinition([]byte(accountDefinition))
	assert.NoError(t, err)
	assert.Equal(t, TagOpen, d.Initial)
	assert.Len(t, d.Tags[TagOpen], 3)
	assert.Empty(t, d.Tags[TagClosed])
	assert.Equal(t, "deposit", d.Tags[TagOpen][0].Effect)
}

func TestLoadRegistryUnknownEffect(t *testing.T) {
	_, err := statebox.LoadRegistry(
		[]byte(accountDefinition), statebox.Effects[Account]{},
	)
	assert.ErrorIs(t, err, statebox.ErrUnknownEffect)
	assert.Contains(t, err.Error(), "deposit")
}

func TestLoadRegistryBadGuard(t *testing.T) {
	def := `
initial: open
tags:
  open:
    - on: deposit
      to: open
      guard: "data >"
`
	_, err := statebox.LoadRegistry([]byte(def), statebox.Effects[Account]{})
	var guardErr *statebox.GuardError
	assert.ErrorAs(t, err, &guardErr)
}

func TestLoadRegistryBadYAML(t *testing.T) {
	_, err := statebox.LoadRegistry(
		[]byte("initial: [unclosed"), statebox.Effects[Account]{},
	)
	assert.Error(t, err)
}

func TestLoadRegistryUndeclaredTarget(t *testing.T) {
	def := `
initial: open
tags:
  open:
    - on: close
      to: closed
`
	_, err := statebox.LoadRegistry([]byte(def), statebox.Effects[Account]{})
	assert.ErrorIs(t, err, statebox.ErrUndeclaredTag)
}
