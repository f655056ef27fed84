package llm_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/openai/openai-go"

	"github.com/shipits/recap/common/llm"
)

var _ = Describe("Config", func() {
	DescribeTable("Enabled",
		func(cfg llm.Config, expected bool) {
			Expect(cfg.Enabled()).To(Equal(expected))
		},
		Entry("openai with key",
			llm.Config{Provider: llm.ProviderOpenAI, APIKey: "sk-test"}, true),
		Entry("openai without key",
			llm.Config{Provider: llm.ProviderOpenAI}, false),
		Entry("anthropic with key",
			llm.Config{Provider: llm.ProviderAnthropic, APIKey: "sk-ant"}, true),
		Entry("azure with key and endpoint",
			llm.Config{Provider: llm.ProviderAzure, APIKey: "key", BaseURL: "https://example.openai.azure.com"}, true),
		Entry("azure without endpoint",
			llm.Config{Provider: llm.ProviderAzure, APIKey: "key"}, false),
		Entry("unknown provider",
			llm.Config{Provider: "cohere", APIKey: "key"}, false),
		Entry("empty config",
			llm.Config{}, false),
	)
})

var _ = Describe("New", func() {
	It("returns ErrNotConfigured when credentials are missing", func() {
		_, err := llm.New(llm.Config{Provider: llm.ProviderOpenAI})
		Expect(err).To(MatchError(llm.ErrNotConfigured))
	})

	It("builds an openai client that reports its model", func() {
		client, err := llm.New(llm.Config{Provider: llm.ProviderOpenAI, APIKey: "sk-test", Model: "gpt-4o"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("gpt-4o"))
	})

	It("defaults the openai model when unset", func() {
		client, err := llm.New(llm.Config{Provider: llm.ProviderOpenAI, APIKey: "sk-test"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("gpt-4o-mini"))
	})

	It("builds an azure client against a deployment", func() {
		client, err := llm.New(llm.Config{
			Provider: llm.ProviderAzure,
			APIKey:   "key",
			BaseURL:  "https://example.openai.azure.com",
			Model:    "summaries-gpt4o",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("summaries-gpt4o"))
	})

	It("builds an anthropic client", func() {
		client, err := llm.New(llm.Config{Provider: llm.ProviderAnthropic, APIKey: "sk-ant"})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.Model()).To(Equal("claude-sonnet-4-5-20250514"))
	})
})

var _ = Describe("Classify", func() {
	DescribeTable("maps provider failures onto upstream kinds",
		func(err error, expected llm.UpstreamKind) {
			classified := llm.Classify(context.Background(), err)
			Expect(classified.Kind).To(Equal(expected))
			Expect(errors.Is(classified, err)).To(BeTrue())
		},
		Entry("openai 401", &openai.Error{StatusCode: 401}, llm.UpstreamUnauthorized),
		Entry("openai 403", &openai.Error{StatusCode: 403}, llm.UpstreamUnauthorized),
		Entry("openai 404", &openai.Error{StatusCode: 404}, llm.UpstreamDeploymentNotFound),
		Entry("openai 408", &openai.Error{StatusCode: 408}, llm.UpstreamTimeout),
		Entry("openai 429", &openai.Error{StatusCode: 429}, llm.UpstreamRateLimited),
		Entry("openai 500", &openai.Error{StatusCode: 500}, llm.UpstreamUnreachable),
		Entry("openai 503", &openai.Error{StatusCode: 503}, llm.UpstreamUnreachable),
		Entry("anthropic 401", &anthropic.Error{StatusCode: 401}, llm.UpstreamUnauthorized),
		Entry("anthropic 404", &anthropic.Error{StatusCode: 404}, llm.UpstreamDeploymentNotFound),
		Entry("anthropic 429", &anthropic.Error{StatusCode: 429}, llm.UpstreamRateLimited),
		Entry("anthropic 529", &anthropic.Error{StatusCode: 529}, llm.UpstreamUnreachable),
		Entry("deadline exceeded", context.DeadlineExceeded, llm.UpstreamTimeout),
		Entry("wrapped deadline", fmt.Errorf("calling api: %w", context.DeadlineExceeded), llm.UpstreamTimeout),
		Entry("connection refused", errors.New("dial tcp 127.0.0.1:443: connect: connection refused"), llm.UpstreamUnreachable),
	)

	It("classifies a wrapped api error by its status code", func() {
		wrapped := fmt.Errorf("calling api: %w", &openai.Error{StatusCode: 429})
		Expect(llm.Classify(context.Background(), wrapped).Kind).To(Equal(llm.UpstreamRateLimited))
	})

	It("treats an expired context as a timeout regardless of the error", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 0)
		defer cancel()
		<-ctx.Done()

		classified := llm.Classify(ctx, errors.New("request aborted"))
		Expect(classified.Kind).To(Equal(llm.UpstreamTimeout))
	})

	It("survives errors.As dispatch after wrapping", func() {
		err := fmt.Errorf("generating summary: %w", llm.Classify(context.Background(), &openai.Error{StatusCode: 429}))

		var upstream *llm.UpstreamError
		Expect(errors.As(err, &upstream)).To(BeTrue())
		Expect(upstream.Kind).To(Equal(llm.UpstreamRateLimited))
	})
})
