package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titleblock/internal/application"
	"titleblock/internal/domain"
)

type scripted struct {
	answers []domain.Resolution
	seen    []domain.Conflict
}

func (s *scripted) Resolve(c domain.Conflict) domain.Resolution {
	s.seen = append(s.seen, c)
	if len(s.answers) == 0 {
		return domain.ResolveKeep
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a
}

func TestMapFields(t *testing.T) {
	t.Run("adds new tags", func(t *testing.T) {
		store := &memMappings{mapping: domain.FieldMapping{"T1": "DWG No."}}
		res, err := NewMapFieldsCommand(store, nil, domain.FieldMapping{"T1": "DWG No.", "T2": "REVISION"}).Execute()
		require.NoError(t, err)
		assert.True(t, res.Saved)
		assert.Equal(t, []string{"T2"}, res.Merge.Added)
		assert.Equal(t, domain.FieldMapping{"T1": "DWG No.", "T2": "REVISION"}, store.mapping)
	})

	t.Run("same pair twice is a no-op", func(t *testing.T) {
		store := &memMappings{mapping: domain.FieldMapping{"T1": "DWG No."}}
		res, err := NewMapFieldsCommand(store, nil, domain.FieldMapping{"T1": "DWG No."}).Execute()
		require.NoError(t, err)
		assert.False(t, res.Saved)
		assert.Equal(t, 0, store.saves)
	})

	t.Run("conflicts go to the resolver", func(t *testing.T) {
		store := &memMappings{mapping: domain.FieldMapping{"A": "VARIABLE", "B": "VARIABLE", "C": "VARIABLE"}}
		resolver := &scripted{answers: []domain.Resolution{domain.ResolveReplace, domain.ResolveKeepAll}}
		proposed := domain.FieldMapping{"A": "STATIC", "B": "STATIC", "C": "STATIC"}

		res, err := NewMapFieldsCommand(store, resolver, proposed).Execute()
		require.NoError(t, err)
		assert.True(t, res.Saved)
		assert.Len(t, resolver.seen, 2)
		assert.Equal(t, domain.FieldMapping{"A": "STATIC", "B": "VARIABLE", "C": "VARIABLE"}, store.mapping)
	})

	t.Run("padded roles are trimmed", func(t *testing.T) {
		store := &memMappings{mapping: domain.FieldMapping{}}
		res, err := NewMapFieldsCommand(store, nil, domain.FieldMapping{"T1": " DWG No.", "T2": "REVISION  "}).Execute()
		require.NoError(t, err)
		assert.True(t, res.Saved)
		assert.Equal(t, domain.FieldMapping{"T1": "DWG No.", "T2": "REVISION"}, store.mapping)
	})

	t.Run("cancel writes nothing", func(t *testing.T) {
		store := &memMappings{mapping: domain.FieldMapping{"A": "VARIABLE"}}
		resolver := &scripted{answers: []domain.Resolution{domain.ResolveCancel}}
		res, err := NewMapFieldsCommand(store, resolver, domain.FieldMapping{"A": "STATIC", "Z": "REVISION"}).Execute()
		require.NoError(t, err)
		assert.True(t, res.Merge.Cancelled)
		assert.False(t, res.Saved)
		assert.Equal(t, 0, store.saves)
	})
}

func TestMapFieldsValidation(t *testing.T) {
	tests := []struct {
		name     string
		proposed domain.FieldMapping
	}{
		{"empty", domain.FieldMapping{}},
		{"unknown role", domain.FieldMapping{"T1": "REV 11 REV"}},
		{"unknown padded role", domain.FieldMapping{"T1": " REV 11 REV "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMapFieldsCommand(&memMappings{}, nil, tt.proposed).Execute()
			var ve *application.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "mapping", ve.Field)
		})
	}
}

func TestProposalFromTable(t *testing.T) {
	got := ProposalFromTable([]domain.TableRow{
		{Tag: "T1", Role: domain.RoleDrawingNumber},
		{Tag: "T2"},
		{Tag: "T3", Role: domain.RevisionSlot(2, domain.FieldDate)},
	})
	assert.Equal(t, domain.FieldMapping{"T1": "DWG No.", "T3": "REV 2 DATE"}, got)
}
