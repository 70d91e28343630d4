package postgres

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	err        error
	rolledBack bool
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return f.err
}

func TestRollback(t *testing.T) {
	cause := errors.New("violação de chave única")

	tests := []struct {
		name          string
		rollbackErr   error
		expectedError string
	}{
		{
			name:          "Devolve o erro original quando o rollback funciona",
			expectedError: "violação de chave única",
		},
		{
			name:          "Preserva o erro original quando o rollback falha",
			rollbackErr:   errors.New("conexão encerrada"),
			expectedError: "violação de chave única (rollback: conexão encerrada)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeTx{err: tt.rollbackErr}

			err := rollback(tx, cause)

			assert.True(t, tx.rolledBack)
			assert.ErrorIs(t, err, cause)
			assert.EqualError(t, err, tt.expectedError)
		})
	}
}
