package configmap

import (
	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/config"
	"k8s.io/client-go/kubernetes"
)

// Backend keeps the document under one key of a Kubernetes ConfigMap
type Backend struct {
	Config    config.ConfigMapConfig
	Clientset kubernetes.Interface
}

func (s *Backend) Order() int {
	return s.Config.Order
}

func (s *Backend) Name() string {
	return "configmap"
}

func (s *Backend) Kind() backend.Kind {
	return backend.KeyValue
}
