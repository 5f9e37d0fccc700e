package ingest_test

import (
	"context"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/growthgenius/engagebot/internal/dedup"
	"github.com/growthgenius/engagebot/internal/identity"
	"github.com/growthgenius/engagebot/internal/ingest"
	"github.com/growthgenius/engagebot/internal/model"
)

func dmEntry(sender, recipient, text string) model.Entry {
	return model.Entry{
		Messaging: []model.Messaging{{
			Sender:    model.Party{ID: sender},
			Recipient: model.Party{ID: recipient},
			Message:   &model.Message{Text: text},
		}},
	}
}

func commentEntry(commentID, from, text string) model.Entry {
	return model.Entry{
		Changes: []model.Change{{
			Field: "comments",
			Value: model.Comment{ID: commentID, From: model.Party{ID: from}, Text: text},
		}},
	}
}

var _ = Describe("Router", func() {
	var (
		ctx       context.Context
		resolver  *identity.Resolver
		guard     dedup.Guard
		responder *mockResponder
		outbound  *mockInstagramAPI
		router    *ingest.Router

		persistedIDs []string
		persistMu    sync.Mutex
	)

	newRouter := func(configuredID string) *ingest.Router {
		resolver = identity.NewResolver(configuredID, func(id string) error {
			persistMu.Lock()
			defer persistMu.Unlock()
			persistedIDs = append(persistedIDs, id)
			return nil
		})
		return ingest.NewRouter(resolver, guard, responder, outbound, nil)
	}

	BeforeEach(func() {
		ctx = context.Background()
		guard = dedup.NewMemoryGuard()
		responder = &mockResponder{}
		outbound = &mockInstagramAPI{}
		persistedIDs = nil
		router = newRouter("biz1")
	})

	Describe("identity resolution", func() {
		It("resolves the self-ID from the first echo message", func() {
			router.Route(ctx, model.Envelope{Entries: []model.Entry{{
				Messaging: []model.Messaging{
					{
						Sender:    model.Party{ID: "newbiz"},
						Recipient: model.Party{ID: "u1"},
						Message:   &model.Message{Text: "hi there", IsEcho: true},
					},
					{
						Sender:    model.Party{ID: "otherbiz"},
						Recipient: model.Party{ID: "u2"},
						Message:   &model.Message{Text: "hello", IsEcho: true},
					},
				},
			}}})

			Expect(resolver.IsVerified()).To(BeTrue())
			Expect(resolver.CurrentID()).To(Equal("newbiz"))
			Expect(persistedIDs).To(Equal([]string{"newbiz"}))
		})

		It("persists exactly one id under concurrent echo deliveries", func() {
			var wg sync.WaitGroup
			senders := []string{"biz-a", "biz-b", "biz-c", "biz-d"}
			for _, s := range senders {
				wg.Add(1)
				go func(sender string) {
					defer wg.Done()
					router.Route(ctx, model.Envelope{Entries: []model.Entry{{
						Messaging: []model.Messaging{{
							Sender:    model.Party{ID: sender},
							Recipient: model.Party{ID: "u1"},
							Message:   &model.Message{Text: "echo", IsEcho: true},
						}},
					}}})
				}(s)
			}
			wg.Wait()

			Expect(persistedIDs).To(HaveLen(1))
			Expect(resolver.CurrentID()).To(Equal(persistedIDs[0]))
		})

		It("ignores echo evidence once verified", func() {
			resolver.Resolve(ctx, "biz1")

			router.Route(ctx, model.Envelope{Entries: []model.Entry{{
				Messaging: []model.Messaging{{
					Sender:    model.Party{ID: "late-imposter"},
					Recipient: model.Party{ID: "u1"},
					Message:   &model.Message{Text: "echo", IsEcho: true},
				}},
			}}})

			Expect(resolver.CurrentID()).To(Equal("biz1"))
		})
	})

	Describe("DM pipeline", func() {
		It("replies to a text DM addressed to this account", func() {
			router.Route(ctx, model.Envelope{Entries: []model.Entry{
				dmEntry("u1", "biz1", "How do I grow my audience?"),
			}})

			Expect(responder.Calls()).To(HaveLen(1))
			Expect(responder.Calls()[0]).To(Equal(generateCall{
				UserID: "u1",
				Text:   "How do I grow my audience?",
				Kind:   model.ChannelDM,
			}))
			Expect(outbound.Messages()).To(HaveLen(1))
			Expect(outbound.Messages()[0].Target).To(Equal("u1"))
		})

		It("produces no outbound call for the bot's own message", func() {
			router.Route(ctx, model.Envelope{Entries: []model.Entry{
				dmEntry("biz1", "biz1", "echo of my own reply"),
			}})

			Expect(responder.Calls()).To(BeEmpty())
			Expect(outbound.Messages()).To(BeEmpty())
		})

		It("produces no outbound call when the recipient is another account", func() {
			router.Route(ctx, model.Envelope{Entries: []model.Entry{
				dmEntry("u1", "someone-else", "hello"),
			}})

			Expect(responder.Calls()).To(BeEmpty())
			Expect(outbound.Messages()).To(BeEmpty())
		})

		It("produces no outbound call for events without text", func() {
			entry := model.Entry{
				Messaging: []model.Messaging{
					{
						Sender:    model.Party{ID: "u1"},
						Recipient: model.Party{ID: "biz1"},
						Message:   nil, // read receipt
					},
					{
						Sender:    model.Party{ID: "u1"},
						Recipient: model.Party{ID: "biz1"},
						Message:   &model.Message{Text: ""}, // attachment
					},
				},
			}

			router.Route(ctx, model.Envelope{Entries: []model.Entry{entry}})

			Expect(responder.Calls()).To(BeEmpty())
			Expect(outbound.Messages()).To(BeEmpty())
		})
	})

	Describe("comment pipeline", func() {
		It("produces one public reply and one follow-up DM per fresh comment", func() {
			router.Route(ctx, model.Envelope{Entries: []model.Entry{
				commentEntry("c1", "u1", "How do I grow my audience?"),
			}})

			calls := responder.Calls()
			Expect(calls).To(HaveLen(2))
			Expect(calls[0]).To(Equal(generateCall{
				UserID: "u1",
				Text:   "How do I grow my audience?",
				Kind:   model.ChannelComment,
			}))
			Expect(calls[1]).To(Equal(generateCall{
				UserID: "u1",
				Text:   "Thanks for your comment! How do I grow my audience?",
				Kind:   model.ChannelDM,
			}))

			Expect(outbound.Replies()).To(HaveLen(1))
			Expect(outbound.Replies()[0].Target).To(Equal("c1"))
			Expect(outbound.Messages()).To(HaveLen(1))
			Expect(outbound.Messages()[0].Target).To(Equal("u1"))
		})

		It("produces nothing for a redelivered comment", func() {
			payload := model.Envelope{Entries: []model.Entry{
				commentEntry("c1", "u1", "How do I grow my audience?"),
			}}

			router.Route(ctx, payload)
			router.Route(ctx, payload)

			Expect(responder.Calls()).To(HaveLen(2))
			Expect(outbound.Replies()).To(HaveLen(1))
			Expect(outbound.Messages()).To(HaveLen(1))
		})

		It("replies at most once under concurrent duplicate deliveries", func() {
			payload := model.Envelope{Entries: []model.Entry{
				commentEntry("c1", "u1", "duplicate me"),
			}}

			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					router.Route(ctx, payload)
				}()
			}
			wg.Wait()

			Expect(outbound.Replies()).To(HaveLen(1))
			Expect(outbound.Messages()).To(HaveLen(1))
		})

		It("ignores the bot's own comments", func() {
			router.Route(ctx, model.Envelope{Entries: []model.Entry{
				commentEntry("c1", "biz1", "my own comment"),
			}})

			Expect(responder.Calls()).To(BeEmpty())
			Expect(outbound.Replies()).To(BeEmpty())
		})

		It("ignores changes for other fields", func() {
			router.Route(ctx, model.Envelope{Entries: []model.Entry{{
				Changes: []model.Change{{
					Field: "mentions",
					Value: model.Comment{ID: "c1", From: model.Party{ID: "u1"}, Text: "hi"},
				}},
			}}})

			Expect(responder.Calls()).To(BeEmpty())
		})
	})

	Describe("entry fault isolation", func() {
		It("keeps processing later entries when an earlier one panics", func() {
			responder.generateFn = func(_ context.Context, userID, text string, _ model.ChannelKind) string {
				if userID == "bad" {
					panic("orchestrator bug")
				}
				return "ok"
			}

			router.Route(ctx, model.Envelope{Entries: []model.Entry{
				dmEntry("bad", "biz1", "this one explodes"),
				dmEntry("u2", "biz1", "this one survives"),
			}})

			Expect(outbound.Messages()).To(HaveLen(1))
			Expect(outbound.Messages()[0].Target).To(Equal("u2"))
		})
	})
})
