//go:build integration

package integration

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/propagation"
	"github.com/strandhq/strand-azure/internal/provisioning"
	"github.com/strandhq/strand-azure/internal/provisioning/infrastructure"
	"github.com/strandhq/strand-azure/internal/provisioning/services"
	testutil "github.com/strandhq/strand-azure/internal/testing"
)

// install runs the cloud phases followed by credential propagation, the
// way the install handler sequences them. Chart deployment is covered by
// the handler tests; everything up to it runs for real here.
func install(cfg *config.Config, fake *testutil.FakeClient, cluster *testutil.FakeCluster) (*provisioning.State, error) {
	pctx := provisioning.NewContext(context.Background(), cfg, fake, provisioning.NewConsoleObserver())
	phases := []provisioning.Phase{
		infrastructure.NewProvisioner(),
		services.NewProvisioner(),
	}
	if err := provisioning.RunPhases(pctx, phases); err != nil {
		return pctx.State, err
	}
	if err := propagation.Materialize(pctx, cfg, pctx.State, cluster, pctx.Observer); err != nil {
		return pctx.State, err
	}
	return pctx.State, nil
}

var _ = Describe("Install flow", func() {
	var (
		cfg     *config.Config
		fake    *testutil.FakeClient
		cluster *testutil.FakeCluster
	)

	BeforeEach(func() {
		cfg = testutil.MinimalConfig()
		fake = testutil.NewFakeClient()
		cluster = testutil.NewFakeCluster()
	})

	Describe("fresh install", func() {
		It("creates all six cloud resources and updates none", func() {
			_, err := install(cfg, fake, cluster)
			Expect(err).NotTo(HaveOccurred())

			creates := fake.CallsOp(testutil.OpCreate)
			Expect(creates).To(HaveLen(6))
			kinds := make([]string, len(creates))
			for i, call := range creates {
				kinds[i] = call.Kind
			}
			Expect(kinds).To(Equal([]string{
				testutil.KindResourceGroup,
				testutil.KindCluster,
				testutil.KindAgentPool,
				testutil.KindRegistry,
				testutil.KindDatabaseServer,
				testutil.KindStorageAccount,
			}))
			Expect(fake.CallsOp(testutil.OpUpdate)).To(BeEmpty())
		})

		It("fetches every credential before touching the cluster", func() {
			_, err := install(cfg, fake, cluster)
			Expect(err).NotTo(HaveOccurred())

			// Registry login, storage key and kubeconfig are all collected
			// during the cloud phases, which complete before Materialize
			// issues the first cluster write.
			creds := fake.CallsOp(testutil.OpCredentials)
			Expect(creds).NotTo(BeEmpty())

			upserts := cluster.CallsOp(testutil.ClusterOpUpsertSecret)
			Expect(upserts).To(HaveLen(3))
			Expect(upserts[0].Name).To(Equal(config.RegistrySecretName))
			Expect(upserts[1].Name).To(Equal(config.DatabaseSecretName))
			Expect(upserts[2].Name).To(Equal(config.StorageSecretName))
		})

		It("writes a docker config secret for the registry", func() {
			_, err := install(cfg, fake, cluster)
			Expect(err).NotTo(HaveOccurred())

			secret := cluster.StoredSecret(cfg.Namespace, config.RegistrySecretName)
			Expect(secret).NotTo(BeNil())
			Expect(secret.Type).To(Equal(corev1.SecretTypeDockerConfigJson))
			Expect(secret.Data).To(HaveKey(corev1.DockerConfigJsonKey))
		})

		It("provisions the DNS zone and collects name servers when enabled", func() {
			cfg = testutil.ManagedDNSConfig()

			state, err := install(cfg, fake, cluster)
			Expect(err).NotTo(HaveOccurred())

			Expect(state.NameServers).To(Equal(fake.ZoneNameServers))
			zoneCreates := 0
			for _, call := range fake.CallsOp(testutil.OpCreate) {
				if call.Kind == testutil.KindDNSZone {
					zoneCreates++
				}
			}
			Expect(zoneCreates).To(Equal(1))
		})
	})

	Describe("second run", func() {
		It("creates nothing and rotates only the database password", func() {
			first, err := install(cfg, fake, cluster)
			Expect(err).NotTo(HaveOccurred())
			fake.ResetCalls()

			second, err := install(cfg, fake, cluster)
			Expect(err).NotTo(HaveOccurred())

			Expect(fake.CallsOp(testutil.OpCreate)).To(BeEmpty())
			updates := fake.CallsOp(testutil.OpUpdate)
			Expect(updates).To(HaveLen(1))
			Expect(updates[0].Kind).To(Equal(testutil.KindDatabaseServer))
			Expect(second.DatabasePassword).NotTo(Equal(first.DatabasePassword))
		})

		It("carries the encryption keyring forward verbatim", func() {
			_, err := install(cfg, fake, cluster)
			Expect(err).NotTo(HaveOccurred())
			firstKeyring := cluster.StoredSecret(cfg.Namespace, config.DatabaseSecretName).Data["encryptionKeys"]
			Expect(firstKeyring).NotTo(BeEmpty())

			_, err = install(cfg, fake, cluster)
			Expect(err).NotTo(HaveOccurred())

			secret := cluster.StoredSecret(cfg.Namespace, config.DatabaseSecretName)
			Expect(secret.Data["encryptionKeys"]).To(Equal(firstKeyring))
			Expect(secret.Data["password"]).NotTo(BeEmpty())
		})
	})

	Describe("recovery after partial failure", func() {
		It("creates only the resource that is still missing", func() {
			failKey := testutil.OpCreate + " " + testutil.KindStorageAccount
			fake.FailOn[failKey] = errors.New("409 conflict")

			_, err := install(cfg, fake, cluster)
			Expect(err).To(HaveOccurred())

			delete(fake.FailOn, failKey)
			fake.ResetCalls()

			_, err = install(cfg, fake, cluster)
			Expect(err).NotTo(HaveOccurred())

			creates := fake.CallsOp(testutil.OpCreate)
			Expect(creates).To(HaveLen(1))
			Expect(creates[0].Kind).To(Equal(testutil.KindStorageAccount))
		})

		It("leaves the cluster untouched when a cloud phase fails", func() {
			fake.FailOn[testutil.OpCreate+" "+testutil.KindCluster] = errors.New("quota exceeded")

			_, err := install(cfg, fake, cluster)

			Expect(err).To(HaveOccurred())
			Expect(cluster.Calls()).To(BeEmpty())
		})
	})
})
