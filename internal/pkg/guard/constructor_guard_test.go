package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		require.NoError(t, g.Validate(customError))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard // zero value

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a domain object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type OrderLine struct {
		productID string
		qty       float64
		guard     guard.ConstructorGuard
	}

	var errLineNotConstructed = errors.New("OrderLine must be created via NewOrderLine")

	newOrderLine := func(productID string, qty float64) (OrderLine, error) {
		if productID == "" {
			return OrderLine{}, errors.New("product is required")
		}
		if qty == 0 {
			return OrderLine{}, errors.New("quantity must be nonzero")
		}
		return OrderLine{
			productID: productID,
			qty:       qty,
			guard:     guard.NewConstructorGuard(),
		}, nil
	}

	validateLine := func(l OrderLine) error {
		return l.guard.Validate(errLineNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		line, err := newOrderLine("SKU-1", 5)

		require.NoError(t, err)
		require.NoError(t, validateLine(line))
		assert.Equal(t, "SKU-1", line.productID)
		assert.InEpsilon(t, 5.0, line.qty, 1e-9)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		var line OrderLine // zero value

		err := validateLine(line)

		require.Error(t, err)
		assert.Equal(t, errLineNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newOrderLine("", 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "product is required")

		_, err = newOrderLine("SKU-1", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity must be nonzero")
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardConcurrency verifies that ConstructorGuard is safe for concurrent use.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 1000 {
				err := g.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}
