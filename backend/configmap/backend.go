package configmap

import (
	"context"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
	"github.com/rs/zerolog/log"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	typedcorev1 "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

func (s *Backend) Init(_ context.Context, appConfig config.ApplicationConfiguration) error {
	s.Config = appConfig.ConfigMap
	if s.Clientset != nil {
		return nil
	}

	var restConfig *rest.Config
	var err error

	if s.Config.Kubeconfig != "" {
		restConfig, err = clientcmd.BuildConfigFromFlags("", s.Config.Kubeconfig)
		if err != nil {
			return backend.Failure(backend.ErrConfigurationMissing, err, "kubeconfig %s", s.Config.Kubeconfig)
		}
		log.Info().Str("kubeconfig", s.Config.Kubeconfig).Msg("Using kubeconfig for K8s authentication")
	} else {
		restConfig, err = rest.InClusterConfig()
		if err != nil {
			return backend.Failure(backend.ErrConfigurationMissing, err, "in-cluster config")
		}
		log.Info().Msg("Using in-cluster K8s authentication")
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return backend.Failure(backend.ErrConfigurationMissing, err, "kubernetes clientset")
	}

	s.Clientset = clientset
	return nil
}

func (s *Backend) Read(ctxt context.Context) ([]byte, error) {
	log.Debug().Msgf("Fetching K8s configmap [%s/%s] with key [%s]...", s.Config.Namespace, s.Config.Name, s.Config.Key)

	configMap, err := s.configMaps().Get(ctxt, s.Config.Name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return nil, backend.ErrNotFound
	} else if err != nil {
		return nil, s.failure(err, "get")
	}

	if value, ok := configMap.Data[s.Config.Key]; ok && value != "" {
		return []byte(value), nil
	}
	if binData, ok := configMap.BinaryData[s.Config.Key]; ok && len(binData) > 0 {
		return binData, nil
	}
	return nil, backend.ErrNotFound
}

// Write replaces the key, creating the ConfigMap when it does not exist yet
func (s *Backend) Write(ctxt context.Context, payload []byte) error {
	configMap, err := s.configMaps().Get(ctxt, s.Config.Name, metav1.GetOptions{})

	if apierrors.IsNotFound(err) {
		configMap = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      s.Config.Name,
				Namespace: s.Config.Namespace,
				Labels:    map[string]string{"app.kubernetes.io/managed-by": "storefront"},
			},
			Data: map[string]string{s.Config.Key: string(payload)},
		}

		if _, err = s.configMaps().Create(ctxt, configMap, metav1.CreateOptions{}); err != nil {
			return s.failure(err, "create")
		}
		return nil
	} else if err != nil {
		return s.failure(err, "get")
	}

	if configMap.Data == nil {
		configMap.Data = map[string]string{}
	}
	configMap.Data[s.Config.Key] = string(payload)
	delete(configMap.BinaryData, s.Config.Key)

	if _, err = s.configMaps().Update(ctxt, configMap, metav1.UpdateOptions{}); err != nil {
		return s.failure(err, "update")
	}
	return nil
}

func (s *Backend) Check(ctxt context.Context) error {
	_, err := s.configMaps().Get(ctxt, s.Config.Name, metav1.GetOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return s.failure(err, "get")
	}
	return nil
}

func (s *Backend) Close() {}

func (s *Backend) configMaps() typedcorev1.ConfigMapInterface {
	return s.Clientset.CoreV1().ConfigMaps(s.Config.Namespace)
}

func (s *Backend) failure(err error, op string) error {
	class := backend.ErrRemoteUnavailable
	if apierrors.IsForbidden(err) || apierrors.IsUnauthorized(err) {
		class = backend.ErrConfigurationMissing
	}
	return backend.Failure(class, err, "%s configmap %s/%s", op, s.Config.Namespace, s.Config.Name)
}
