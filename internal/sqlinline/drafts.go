package sqlinline

const QInsertDraft = `--sql a82b6b0a-f843-475c-b2e4-c4e62ddcd7bc
insert into post_drafts (hook, body, cta, hashtags, suggested_visual, image_path, performance_summary, strategy, created_at, updated_at)
values ($1, $2, $3, $4, $5, $6, $7::jsonb, $8::jsonb, now(), now())
returning id, hook, body, cta, hashtags, suggested_visual, image_path, performance_summary, strategy, created_at, updated_at;
`

const QSelectDraftByID = `--sql fe3e83e2-ff59-4b57-8d66-16884a7a5104
select id, hook, body, cta, hashtags, suggested_visual, image_path, performance_summary, strategy, created_at, updated_at
from post_drafts
where id = $1;
`

const QListDrafts = `--sql a576d337-9160-4fe4-a0cb-ab1adcb58d8f
select id, hook, body, cta, hashtags, suggested_visual, image_path, performance_summary, strategy, created_at, updated_at
from post_drafts
order by updated_at desc
limit $1;
`

const QUpdateDraft = `--sql 6f05ccb2-1cb0-4613-86cd-7d619b89fb65
update post_drafts
set hook = coalesce($2, hook),
    body = coalesce($3, body),
    cta = coalesce($4, cta),
    hashtags = coalesce($5, hashtags),
    updated_at = now()
where id = $1
returning id, hook, body, cta, hashtags, suggested_visual, image_path, performance_summary, strategy, created_at, updated_at;
`

const QSetDraftImagePath = `--sql 1d9e95e2-6a2c-40af-9501-21a411881a7b
update post_drafts
set image_path = $2,
    updated_at = now()
where id = $1;
`
