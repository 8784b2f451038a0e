package configmap

import (
	"context"
	"errors"
	"testing"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func TestReadMissingConfigMap(t *testing.T) {
	s := _backend(t)

	_, err := s.Read(context.Background())
	assert.ErrorIs(t, err, backend.ErrNotFound)
	assert.NoError(t, s.Check(context.Background()))
}

func TestWriteCreatesThenUpdates(t *testing.T) {
	s := _backend(t)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, []byte(`{"v":1}`)))

	data, err := s.Read(ctx)
	assert.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(data))

	require.NoError(t, s.Write(ctx, []byte(`{"v":2}`)))

	cm, err := s.Clientset.CoreV1().ConfigMaps("shop").Get(ctx, "storefront-data", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, cm.Data["data.json"])
	assert.Equal(t, "storefront", cm.Labels["app.kubernetes.io/managed-by"])
}

func TestReadKeepsOtherKeysAndBinaryData(t *testing.T) {
	s := _backend(t, &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "storefront-data", Namespace: "shop"},
		Data:       map[string]string{"other": "x"},
		BinaryData: map[string][]byte{"data.json": []byte(`{"bin":true}`)},
	})
	ctx := context.Background()

	data, err := s.Read(ctx)
	assert.NoError(t, err)
	assert.Equal(t, `{"bin":true}`, string(data))

	require.NoError(t, s.Write(ctx, []byte(`{"v":3}`)))

	cm, err := s.Clientset.CoreV1().ConfigMaps("shop").Get(ctx, "storefront-data", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "x", cm.Data["other"])
	assert.Equal(t, `{"v":3}`, cm.Data["data.json"])
	assert.NotContains(t, cm.BinaryData, "data.json")
}

func TestEmptyKeyIsNotFound(t *testing.T) {
	s := _backend(t, &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "storefront-data", Namespace: "shop"},
		Data:       map[string]string{"data.json": ""},
	})

	_, err := s.Read(context.Background())
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

func TestApiFailuresAreRemoteUnavailable(t *testing.T) {
	s := _backend(t)

	s.Clientset.(*fake.Clientset).PrependReactor("get", "configmaps", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("connection refused")
	})

	_, err := s.Read(context.Background())
	assert.ErrorIs(t, err, backend.ErrRemoteUnavailable)

	err = s.Write(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, backend.ErrRemoteUnavailable)

	assert.Error(t, s.Check(context.Background()))
}

func TestIdentity(t *testing.T) {
	s := &Backend{Config: config.ConfigMapConfig{Order: 40}}
	assert.Equal(t, "configmap", s.Name())
	assert.Equal(t, 40, s.Order())
	assert.Equal(t, backend.KeyValue, s.Kind())
}

func _backend(t *testing.T, objects ...runtime.Object) *Backend {
	s := &Backend{Clientset: fake.NewClientset(objects...)}

	err := s.Init(context.Background(), config.ApplicationConfiguration{
		ConfigMap: config.ConfigMapConfig{Enabled: true, Namespace: "shop", Name: "storefront-data", Key: "data.json"},
	})
	require.NoError(t, err)
	return s
}
