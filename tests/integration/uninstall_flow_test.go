//go:build integration

package integration

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/strandhq/strand-azure/internal/config"
	"github.com/strandhq/strand-azure/internal/provisioning"
	"github.com/strandhq/strand-azure/internal/provisioning/teardown"
	testutil "github.com/strandhq/strand-azure/internal/testing"
)

var _ = Describe("Uninstall flow", func() {
	var (
		cfg  *config.Config
		fake *testutil.FakeClient
	)

	BeforeEach(func() {
		cfg = testutil.MinimalConfig()
		fake = testutil.NewFakeClient()
	})

	// The in-cluster cleanup paths need a reachable API server and are
	// covered by the teardown package tests with injected fakes. At this
	// level we verify the cloud side: what gets deleted and what stays.
	Describe("when the cluster is already gone", func() {
		It("still issues the cluster delete and succeeds", func() {
			fake.SeedResourceGroup(cfg.ResourceGroup, cfg.Location)

			controller := teardown.NewController(fake, provisioning.NewConsoleObserver())
			err := controller.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())

			deletes := fake.CallsOp(testutil.OpDelete)
			Expect(deletes).To(HaveLen(1))
			Expect(deletes[0].Kind).To(Equal(testutil.KindCluster))
		})

		It("retains the resource group, database and storage account", func() {
			fake = testutil.NewClientFixture().ExistingInstall(cfg)
			// Simulate the cluster having been removed out of band.
			Expect(fake.DeleteCluster(context.Background(), cfg.ResourceGroup, cfg.ClusterName)).To(Succeed())
			fake.ResetCalls()

			controller := teardown.NewController(fake, provisioning.NewConsoleObserver())
			err := controller.Run(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())

			for _, call := range fake.CallsOp(testutil.OpDelete) {
				Expect(call.Kind).To(Equal(testutil.KindCluster))
			}
			_, err = fake.GetResourceGroup(context.Background(), cfg.ResourceGroup)
			Expect(err).NotTo(HaveOccurred())
			_, err = fake.GetDatabaseServer(context.Background(), cfg.ResourceGroup, "strand-test-mysql")
			Expect(err).NotTo(HaveOccurred())
			_, err = fake.GetStorageAccount(context.Background(), cfg.ResourceGroup, "strandteststorage")
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
