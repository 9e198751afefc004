package memory_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/taller-ops/internal/domain"
	"github.com/tu-usuario/taller-ops/internal/store"
	"github.com/tu-usuario/taller-ops/internal/store/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del Ledger Store en memoria: contrato get/set/update/append/setif/list.
// Las mismas propiedades valen para la implementación PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGet_RutaInexistenteDevuelveNilNil(t *testing.T) {
	st := memory.New()

	got, err := st.Get(context.Background(), "payments/no-existe")
	require.NoError(t, err)
	assert.Nil(t, got, "una ruta ausente no es un error, es (nil, nil)")
}

func TestSet_CreaYSobreescribeConVersionCreciente(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "products/p1", doc{Name: "aceite", Count: 1}))
	first, err := st.Get(ctx, "products/p1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, int64(1), first.Version)
	assert.Equal(t, "p1", first.ID)

	require.NoError(t, st.Set(ctx, "products/p1", doc{Name: "aceite", Count: 2}))
	second, err := st.Get(ctx, "products/p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version, "cada escritura incrementa la versión")

	var d doc
	require.NoError(t, json.Unmarshal(second.Data, &d))
	assert.Equal(t, 2, d.Count, "Set es sobreescritura completa")
}

func TestUpdate_MergeSuperficial(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "products/p1", doc{Name: "aceite", Count: 1}))
	require.NoError(t, st.Update(ctx, "products/p1", map[string]any{"count": 9}))

	got, err := st.Get(ctx, "products/p1")
	require.NoError(t, err)
	var d doc
	require.NoError(t, json.Unmarshal(got.Data, &d))
	assert.Equal(t, "aceite", d.Name, "los campos no tocados se preservan")
	assert.Equal(t, 9, d.Count)
}

func TestUpdate_DocumentoAusenteDevuelveNotFound(t *testing.T) {
	st := memory.New()

	err := st.Update(context.Background(), "products/nada", map[string]any{"count": 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppend_GeneraIDsDistintos(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	id1, err := st.Append(ctx, store.ColMovements, doc{Name: "m1"})
	require.NoError(t, err)
	id2, err := st.Append(ctx, store.ColMovements, doc{Name: "m2"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	docs, err := st.List(ctx, store.ColMovements)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestSetIf_VersionCorrectaEscribe(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "products/p1", doc{Count: 1}))
	got, _ := st.Get(ctx, "products/p1")

	err := st.SetIf(ctx, "products/p1", doc{Count: 2}, got.Version)
	require.NoError(t, err)

	after, _ := st.Get(ctx, "products/p1")
	assert.Equal(t, got.Version+1, after.Version)
}

func TestSetIf_VersionViejaDevuelveConflicto(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "products/p1", doc{Count: 1}))
	got, _ := st.Get(ctx, "products/p1")

	// Otro escritor gana la carrera
	require.NoError(t, st.Set(ctx, "products/p1", doc{Count: 5}))

	err := st.SetIf(ctx, "products/p1", doc{Count: 2}, got.Version)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// El documento del ganador quedó intacto
	after, _ := st.Get(ctx, "products/p1")
	var d doc
	require.NoError(t, json.Unmarshal(after.Data, &d))
	assert.Equal(t, 5, d.Count)
}

func TestSetIf_VersionCeroExigeDocumentoAusente(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	require.NoError(t, st.SetIf(ctx, "products/p1", doc{Count: 1}, 0))

	err := st.SetIf(ctx, "products/p1", doc{Count: 2}, 0)
	assert.ErrorIs(t, err, domain.ErrConflict, "version 0 = el documento no debe existir")
}

func TestList_SoloLaColeccionPedida(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "payments/a", doc{Name: "pago"}))
	require.NoError(t, st.Set(ctx, "products/b", doc{Name: "producto"}))

	docs, err := st.List(ctx, "payments")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "a", docs[0].ID)
}
